// Package resetcode holds one-time password reset codes in process memory.
package resetcode

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dtroode/clinic-server/internal/model"
)

var _ model.ResetCodeStore = (*Store)(nil)

type entry struct {
	code      string
	expiresAt time.Time
}

// Store is a mutex-guarded map from email to its live reset code.
// Entries never survive a restart.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore creates an empty Store using the wall clock.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates an empty Store reading time from now.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Store saves code for email, replacing any previous entry.
func (s *Store) Store(email, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = entry{code: code, expiresAt: s.now().Add(ttl)}
}

// Validate checks code against the live entry for email.
// An entry read past its expiry is deleted and reported as expired.
// A mismatch leaves the entry in place.
func (s *Store) Validate(email, code string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return false, false
	}

	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return false, true
	}

	return subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) == 1, false
}

// Consume is Validate that also deletes the entry on a match, under the same
// lock. At most one caller can consume a given code.
func (s *Store) Consume(email, code string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return false, false
	}

	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return false, true
	}

	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		return false, false
	}
	delete(s.entries, email)
	return true, false
}

// Remove deletes the entry for email, if any.
func (s *Store) Remove(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
