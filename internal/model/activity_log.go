package model

import "time"

// ActivityLog is one append-only entry in the `activity_logs` table.
// UserID is nil for system events not attributable to any account.
type ActivityLog struct {
	ID        uint64    // activity_logs.log_id
	UserID    *uint64   // activity_logs.user_id (nullable)
	Action    string    // activity_logs.action
	CreatedAt time.Time // activity_logs.created_at
}

// LogUser carries the user columns joined onto a log row for display.
type LogUser struct {
	ID       uint64
	FullName string
	Email    string
	Role     string
}
