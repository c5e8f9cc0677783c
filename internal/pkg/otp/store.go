package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("otp not found or already used")
	ErrExpired  = errors.New("otp expired")
	ErrMismatch = errors.New("otp does not match")
)

const digits = 6

type entry struct {
	code      string
	expiresAt time.Time
}

// Store keeps one pending code per key. Codes are single use.
type Store struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// WithClock replaces the time source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Issue generates a fresh code for key, replacing any pending one.
func (s *Store) Issue(key string) (code string, expiresAt time.Time, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate otp: %w", err)
	}
	code = fmt.Sprintf("%0*d", digits, n.Int64())
	expiresAt = s.now().Add(s.ttl)

	s.mu.Lock()
	s.entries[key] = entry{code: code, expiresAt: expiresAt}
	s.mu.Unlock()

	return code, expiresAt, nil
}

// Verify consumes the pending code for key when it matches and has not expired.
// A mismatch leaves the code in place until it expires.
func (s *Store) Verify(key, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return ErrExpired
	}
	if e.code != code {
		return ErrMismatch
	}
	delete(s.entries, key)
	return nil
}

// PurgeExpired drops every expired code and returns how many were removed.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of pending codes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
