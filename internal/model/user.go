// Package model defines domain entities for the application.
package model

import "github.com/google/uuid"

// User is a registered user of the API.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// NewUser creates a user with a freshly generated random ID.
func NewUser(name, email string) *User {
	return &User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
	}
}
