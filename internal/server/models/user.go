// Package models defines server-side data models persisted in the database.
package models

import "time"

// Anonymous is the user id resolved for requests without valid session evidence.
const Anonymous int64 = 0

// DefaultAge is assigned to newly registered users.
const DefaultAge = 18

// User is an account record. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Theme        Theme     `json:"theme"`
	HasAddedTask int       `json:"hasAddedTask"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProfileChanges is a partial update of a user. Nil slots are left untouched.
type ProfileChanges struct {
	Name         *string
	Email        *string
	Age          *int
	Theme        *Theme
	HasAddedTask *int
}

// IsEmpty reports whether no slot is set.
func (c ProfileChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Age == nil && c.Theme == nil && c.HasAddedTask == nil
}
