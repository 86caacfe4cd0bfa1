// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY string IDs?
// The store assigns IDs sequentially (starting at "1"), but we expose them as
// opaque strings. Clients should never do arithmetic on an ID, and string IDs
// let the generation scheme change without breaking the API.
//
// PasswordHash is tagged `json:"-"` so it can NEVER leak through a JSON
// response, no matter which handler serializes a User. The hash stays inside
// the credential store and the auth service.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique, case-sensitive
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PublicUser is the view of a User that register responses return:
// identity only, never credential material.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public returns the response-safe view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
