package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrBadMessage marks a message that can never be processed. The
// consumer rejects it without requeueing instead of redelivering it
// forever; handlers wrap it around permanent validation failures.
var ErrBadMessage = errors.New("bad message")

// ReportRecalcMessage asks the worker to recompute the persisted
// monthly report for one (user, year, month). It carries only the key;
// the worker reads the entries from storage itself, so a stale message
// is harmless: recomputation is idempotent.
type ReportRecalcMessage struct {
	UserID    string    `json:"user_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReportRecalcMessage creates a recalc message for one report key.
func NewReportRecalcMessage(userID string, year, month int) *ReportRecalcMessage {
	return &ReportRecalcMessage{
		UserID:    userID,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportRecalcMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRecalcMessageFromJSON creates a message from JSON bytes
func ReportRecalcMessageFromJSON(data []byte) (*ReportRecalcMessage, error) {
	var msg ReportRecalcMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
