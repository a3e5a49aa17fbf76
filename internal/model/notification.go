// internal/model/notification.go
package model

import "time"

// Notification is an append-only per-user message, written as a side
// effect of admin review decisions.
type Notification struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
