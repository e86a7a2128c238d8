package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u1", testSecret, time.Hour)
	require.NoError(t, err)

	userID, err := GetUserIDFromToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "u1", userID)
}

func TestTokenRejections(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("u1", testSecret, time.Hour)
		require.NoError(t, err)
		_, err = GetUserIDFromToken(token, []byte("another-secret-key"))
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken("u1", testSecret, -time.Minute)
		require.NoError(t, err)
		_, err = GetUserIDFromToken(token, testSecret)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := GetUserIDFromToken("not.a.token", testSecret)
		require.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)
	require.True(t, CheckPassword(hash, "s3cret"))
	require.False(t, CheckPassword(hash, "wrong"))
}

func TestMiddleware(t *testing.T) {
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Middleware(testSecret)(next)

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken("u1", testSecret, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "u1", seenUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("mangled token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
