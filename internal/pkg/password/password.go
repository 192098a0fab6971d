// Package password is the credential engine: salted adaptive one-way
// hashing of account passwords via bcrypt, with a configurable work factor.
package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinLength and MaxLength bound the raw password before hashing.
	// MaxLength is bcrypt's own input ceiling.
	MinLength = 6
	MaxLength = 72

	// DefaultCost matches the production work factor of the service.
	DefaultCost = 12
)

// ErrLength is returned by Hash when the plaintext is outside [MinLength, MaxLength].
var ErrLength = fmt.Errorf("password length must be between %d and %d", MinLength, MaxLength)

// Hasher hashes and verifies passwords. Hashing is CPU-bound; concurrent
// hashes are capped by a semaphore sized to the CPU count so a burst of
// registrations cannot starve unrelated request goroutines.
type Hasher struct {
	cost int
	sem  chan struct{}
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

// Hash digests plain with the configured work factor. It fails with
// ErrLength before doing any work when the plaintext is out of bounds.
func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if len(plain) < MinLength || len(plain) > MaxLength {
		return "", ErrLength
	}

	select {
	case h.sem <- struct{}{}:
		defer func() { <-h.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A mismatch is (false, nil);
// an error is returned only for a malformed digest.
func (h *Hasher) Verify(plain, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}
