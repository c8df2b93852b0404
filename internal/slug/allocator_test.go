package slug_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryansgue/scanela-sub001/internal/slug"
)

var suffixedPattern = regexp.MustCompile(`^[a-z0-9-]+-[0-9a-f]{4}$`)

type fakeOracle struct {
	taken      map[string]uuid.UUID
	err        error
	lastSlug   string
	lastExcl   uuid.UUID
	checkCount int
}

func (o *fakeOracle) IsTaken(_ context.Context, s string, excludeID uuid.UUID) (bool, error) {
	o.checkCount++
	o.lastSlug = s
	o.lastExcl = excludeID
	if o.err != nil {
		return false, o.err
	}
	owner, ok := o.taken[s]
	if !ok {
		return false, nil
	}
	return owner != excludeID, nil
}

func TestAllocateFreeBase(t *testing.T) {
	oracle := &fakeOracle{taken: map[string]uuid.UUID{}}
	alloc := slug.NewAllocator(oracle)

	got, err := alloc.Allocate(context.Background(), "pizza-uno", "seed", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "pizza-uno", got)
	assert.Equal(t, 1, oracle.checkCount)
}

func TestAllocateTakenBaseGetsFingerprint(t *testing.T) {
	oracle := &fakeOracle{taken: map[string]uuid.UUID{"pizza-uno": uuid.New()}}
	alloc := slug.NewAllocator(oracle)

	got, err := alloc.Allocate(context.Background(), "pizza-uno", "seed", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "pizza-uno-"))
	assert.Regexp(t, suffixedPattern, got)
	// the suffixed result is not re-checked against the oracle
	assert.Equal(t, 1, oracle.checkCount)
}

func TestAllocateExcludesOwnRecord(t *testing.T) {
	self := uuid.New()
	oracle := &fakeOracle{taken: map[string]uuid.UUID{"tacos-joe": self}}
	alloc := slug.NewAllocator(oracle)

	got, err := alloc.Allocate(context.Background(), "tacos-joe", "seed", self)
	require.NoError(t, err)
	assert.Equal(t, "tacos-joe", got)
	assert.Equal(t, self, oracle.lastExcl)
}

func TestValidateChoiceConflictCarriesSuggestion(t *testing.T) {
	oracle := &fakeOracle{taken: map[string]uuid.UUID{"mi-cafe": uuid.New()}}
	alloc := slug.NewAllocator(oracle)

	err := alloc.ValidateChoice(context.Background(), "mi-cafe", "seed", uuid.Nil)
	require.Error(t, err)

	var conflict *slug.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "mi-cafe", conflict.Slug)
	assert.NotEmpty(t, conflict.Suggestion)
	assert.NotEqual(t, conflict.Slug, conflict.Suggestion)
	assert.Regexp(t, suffixedPattern, conflict.Suggestion)
}

func TestValidateChoiceFreeSlug(t *testing.T) {
	oracle := &fakeOracle{taken: map[string]uuid.UUID{}}
	alloc := slug.NewAllocator(oracle)

	err := alloc.ValidateChoice(context.Background(), "mi-cafe", "seed", uuid.Nil)
	assert.NoError(t, err)
}

func TestSuffixedKeepsMaxLength(t *testing.T) {
	oracle := &fakeOracle{taken: map[string]uuid.UUID{}}
	alloc := slug.NewAllocator(oracle)

	long := strings.Repeat("a", slug.MaxLength)
	got := alloc.Suffixed(long, "seed")
	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.Regexp(t, suffixedPattern, got)
}
