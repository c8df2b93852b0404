package slug

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fingerprint suffix is "-" plus 4 hex characters
const suffixLen = 5

// Oracle answers whether a slug is already taken, optionally excluding one
// record (used when updating an existing record's own slug). The oracle is
// an advisory pre-check only; the store-level unique constraint is the
// authoritative uniqueness guarantee.
type Oracle interface {
	IsTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// ConflictError reports a slug already owned by another record, together
// with a fingerprinted alternative the caller may resubmit. The suggestion
// is never applied automatically.
type ConflictError struct {
	Slug       string
	Suggestion string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slug %q is already in use", e.Slug)
}

// Allocator produces slugs guaranteed unique at the moment of check
type Allocator struct {
	oracle Oracle
	now    func() time.Time
}

// NewAllocator creates an allocator backed by the given uniqueness oracle
func NewAllocator(oracle Oracle) *Allocator {
	return &Allocator{oracle: oracle, now: time.Now}
}

// Allocate returns base if it is free, otherwise base with a deterministic
// 4-character hex fingerprint of seed plus a freshness token appended. The
// suffixed result is not re-checked: the fingerprint entropy is treated as
// sufficient and any residual collision surfaces as a store-level conflict.
func (a *Allocator) Allocate(ctx context.Context, base, seed string, excludeID uuid.UUID) (string, error) {
	taken, err := a.oracle.IsTaken(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("checking slug availability: %w", err)
	}
	if !taken {
		return base, nil
	}
	return a.Suffixed(base, seed), nil
}

// ValidateChoice checks an explicit user-supplied slug. A slug taken by a
// different record yields a ConflictError carrying a suggested alternative.
func (a *Allocator) ValidateChoice(ctx context.Context, candidate, seed string, excludeID uuid.UUID) error {
	taken, err := a.oracle.IsTaken(ctx, candidate, excludeID)
	if err != nil {
		return fmt.Errorf("checking slug availability: %w", err)
	}
	if taken {
		return &ConflictError{Slug: candidate, Suggestion: a.Suffixed(candidate, seed)}
	}
	return nil
}

// Suffixed appends a fresh fingerprint to base, trimming base so the result
// stays within MaxLength
func (a *Allocator) Suffixed(base, seed string) string {
	if len(base) > MaxLength-suffixLen {
		base = strings.TrimRight(base[:MaxLength-suffixLen], "-")
	}
	return base + "-" + fingerprint(seed, a.now())
}

func fingerprint(seed string, now time.Time) string {
	sum := sha256.Sum256([]byte(seed + strconv.FormatInt(now.UnixNano(), 10)))
	return hex.EncodeToString(sum[:2])
}
