package models

import "time"

// Note is owned by exactly one user; the row is removed when the owner is
// deleted. UpdatedAt is refreshed on every mutation.
type Note struct {
	ID         int64
	UserID     int64
	Title      string
	Content    string
	IsArchived bool
	ThemeColor *string
	FontFamily *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Tag is global and deduplicated by name; it is not owned by any user.
type Tag struct {
	ID   int64
	Name string
}
