package model

import "time"

// User is an account that owns posts.
// This is a pure domain model with no database-specific dependencies or tags.
// The password hash is never serialized into HTTP responses.
type User struct {
	ID           int64     `json:"id"`
	Handle       string    `json:"handle"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
