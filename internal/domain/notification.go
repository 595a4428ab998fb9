package domain

import "time"

// Notification is an in-app notification row, written alongside the
// fire-and-forget email dispatch.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedOn time.Time `json:"created_on"`
}
