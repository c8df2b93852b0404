package plan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryansgue/scanela-sub001/internal/model"
	"github.com/bryansgue/scanela-sub001/internal/plan"
)

type fakeProfiles struct {
	profile *model.Profile
	err     error
}

func (f *fakeProfiles) FindProfile(context.Context, uuid.UUID) (*model.Profile, error) {
	return f.profile, f.err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		profile  *model.Profile
		expected plan.Tier
	}{
		{
			name:     "active subscription",
			profile:  &model.Profile{Plan: "free", SubscriptionStatus: "active"},
			expected: plan.TierCustomizable,
		},
		{
			name:     "paid plan without status",
			profile:  &model.Profile{Plan: "menu"},
			expected: plan.TierCustomizable,
		},
		{
			name:     "free plan",
			profile:  &model.Profile{Plan: "free"},
			expected: plan.TierFree,
		},
		{
			name:     "canceled subscription",
			profile:  &model.Profile{Plan: "free", SubscriptionStatus: "canceled"},
			expected: plan.TierFree,
		},
		{
			name:     "missing profile",
			profile:  nil,
			expected: plan.TierFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := plan.NewProfileResolver(&fakeProfiles{profile: tt.profile})
			tier, err := resolver.Resolve(context.Background(), uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tier)
		})
	}
}

func TestResolveFailsClosed(t *testing.T) {
	resolver := plan.NewProfileResolver(&fakeProfiles{err: errors.New("store down")})
	tier, err := resolver.Resolve(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Equal(t, plan.TierFree, tier)
}

func TestEffective(t *testing.T) {
	assert.Equal(t, plan.TierCustomizable, plan.Effective(plan.TierCustomizable, false))
	assert.Equal(t, plan.TierCustomizable, plan.Effective(plan.TierCustomizable, true))
	// compensating override: slug intent unlocks personalization for this request
	assert.Equal(t, plan.TierCustomizable, plan.Effective(plan.TierFree, true))
	assert.Equal(t, plan.TierFree, plan.Effective(plan.TierFree, false))
}
