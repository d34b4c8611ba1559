// Package queue defines the activity event payload and the background
// consumer that turns published events into activity_logs rows.
package queue

// ActivityQueueName is the durable queue activity events travel through.
const ActivityQueueName = "activity.recorded"

// ActivityRecordedEvent is published whenever a back-office action worth
// auditing happens.  UserID is nil for system-generated events.  Recording
// is best-effort: the action that produced the event is never rolled back
// when the event cannot be delivered.
type ActivityRecordedEvent struct {
	UserID     *uint64 `json:"user_id"`
	Action     string  `json:"action"`
	OccurredAt string  `json:"occurred_at"` // UTC, 2006-01-02 15:04:05
}
