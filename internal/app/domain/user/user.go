// Package user defines the local user record mirrored from the identity
// provider.
package user

import "time"

// User is the local shadow of an identity-provider account, keyed by the
// provider subject.
type User struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
