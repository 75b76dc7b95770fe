package model

import "time"

// Post is a short text entry owned by exactly one user.
// OwnerID always references an existing user; the schema enforces this with
// a foreign key that cascades on user deletion.
type Post struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
