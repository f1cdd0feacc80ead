package model

import "time"

// PasswordHasher produces and verifies one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// ResetCodeStore keeps one-time password reset codes keyed by email.
type ResetCodeStore interface {
	Store(email, code string, ttl time.Duration)
	Validate(email, code string) (valid bool, expired bool)
	// Consume validates code and deletes the entry on a match in one step.
	Consume(email, code string) (valid bool, expired bool)
	Remove(email string)
}
