// Package http exposes the JSON API: auth, entry CRUD, projects,
// monthly reports and file exports. Handlers stay thin; the rules live
// in core and the orchestration in services.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ore/internal/auth"
	"ore/internal/cache"
	"ore/internal/core"
	"ore/internal/services"
)

// UserStore is the storage the auth and profile handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, u core.User) error
	GetUser(ctx context.Context, id string) (core.User, error)
	GetUserByUsername(ctx context.Context, username string) (core.User, error)
	UpdateUserProfile(ctx context.Context, u core.User) error
}

// ProjectStore is the storage the project handlers need.
type ProjectStore interface {
	CreateProject(ctx context.Context, p core.Project) error
	UpdateProject(ctx context.Context, p core.Project) error
	DeleteProject(ctx context.Context, userID, id string) error
	GetProject(ctx context.Context, userID, id string) (core.Project, error)
	ListProjects(ctx context.Context, userID string) ([]core.Project, error)
}

type Options struct {
	Addr         string
	JWTSecret    []byte
	TokenTTL     time.Duration
	RateLimitRPM int
}

type Server struct {
	http.Server

	entries  *services.EntryService
	reports  *services.ReportService
	users    UserStore
	projects ProjectStore

	secret   []byte
	tokenTTL time.Duration

	rateLimiter *rateLimiter

	// Month-keyed read caches; entry writes invalidate the affected keys.
	reportCache  *cache.LRUCache[core.MonthlyReport]
	entriesCache *cache.LRUCache[[]core.TimeEntry]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server.
func NewServer(opts Options, entries *services.EntryService, reports *services.ReportService, users UserStore, projects ProjectStore) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		entries:      entries,
		reports:      reports,
		users:        users,
		projects:     projects,
		secret:       opts.JWTSecret,
		tokenTTL:     opts.TokenTTL,
		rateLimiter:  newRateLimiter(opts.RateLimitRPM),
		reportCache:  cache.NewLRUCache[core.MonthlyReport](100, 5*time.Minute),
		entriesCache: cache.NewLRUCache[[]core.TimeEntry](200, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.reportCache)
	s.cacheManager.Register(s.entriesCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.Handle("POST /api/register", s.public(s.handleRegister))
	mux.Handle("POST /api/login", s.public(s.handleLogin))

	mux.Handle("GET /api/me", s.protected(s.handleGetProfile))
	mux.Handle("PUT /api/me", s.protected(s.handleUpdateProfile))

	mux.Handle("GET /api/entries", s.protected(s.handleListEntries))
	mux.Handle("POST /api/entries", s.protected(s.handleCreateEntry))
	mux.Handle("PUT /api/entries/{id}", s.protected(s.handleUpdateEntry))
	mux.Handle("DELETE /api/entries/{id}", s.protected(s.handleDeleteEntry))

	mux.Handle("GET /api/projects", s.protected(s.handleListProjects))
	mux.Handle("POST /api/projects", s.protected(s.handleCreateProject))
	mux.Handle("PUT /api/projects/{id}", s.protected(s.handleUpdateProject))
	mux.Handle("DELETE /api/projects/{id}", s.protected(s.handleDeleteProject))

	mux.Handle("GET /api/reports/{year}/{month}", s.protected(s.handleGetReport))
	mux.Handle("PUT /api/reports/{year}/{month}/complete", s.protected(s.handleCompleteReport))
	mux.Handle("PUT /api/reports/{year}/{month}/reopen", s.protected(s.handleReopenReport))

	mux.Handle("GET /api/export/entries.csv", s.protected(s.handleExportCSV))
	mux.Handle("GET /api/export/entries.xlsx", s.protected(s.handleExportExcel))
	mux.Handle("GET /api/export/report.pdf", s.protected(s.handleExportPDF))

	return s
}

// public wraps a handler with the base middleware only.
func (s *Server) public(h http.HandlerFunc) http.Handler {
	return s.withMiddleware(h)
}

// protected additionally requires a valid bearer token.
func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return s.withMiddleware(auth.Middleware(s.secret)(h))
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
