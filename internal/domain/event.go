package domain

import "time"

const EventTypeSessionCancelled = "sessionCancelled"

// Event is a live notification pushed to connected viewers. It exists only
// on the wire: no persistence, no replay, no backfill.
type Event struct {
	Type        string    `json:"type"`
	SessionID   int64     `json:"sessionId"`
	SessionName string    `json:"sessionName"`
	UserName    string    `json:"userName,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
