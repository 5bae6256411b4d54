package domain

import "time"

// User is the domain model for wiki account holders.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries a partial mutation of a user record. Nil fields
// are left untouched by the store.
type UserUpdate struct {
	FullName     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.PasswordHash == nil
}
