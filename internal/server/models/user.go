package models

import "time"

// User is an identity record. HashedPassword is nil for pure-OAuth accounts
// and GoogleID is nil for password-only accounts; every user has at least
// one of the two.
type User struct {
	ID             int64
	Email          string
	Username       string
	HashedPassword *string
	IsActive       bool
	GoogleID       *string
	ProfilePicture *string
	PreferredTheme *string
	PreferredFont  *string
	CreatedAt      time.Time
}

// IsOAuthUser reports whether the account is linked to a Google identity.
func (u *User) IsOAuthUser() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}
