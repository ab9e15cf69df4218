// Package models defines the entities held by the catalog store and the
// request payloads used to create and patch them.
package models

// User is a reader account. Authentication lives outside this service, so
// only the identity is stored.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// UserInput is the payload for creating a user.
type UserInput struct {
	Username string `json:"username" validate:"required,max=64"`
}
