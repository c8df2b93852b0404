// Package plan resolves a caller's effective entitlement tier.
package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/bryansgue/scanela-sub001/internal/model"
)

// Tier is a user's entitlement level for slug personalization
type Tier string

const (
	// TierFree only carries auto-derived slugs
	TierFree Tier = "free"
	// TierCustomizable may choose its own slug
	TierCustomizable Tier = "customizable"
)

const (
	paidPlan     = "menu"
	statusActive = "active"
)

// Resolver determines a user's entitlement tier. Injected so the engine can
// be tested without a live entitlement store.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (Tier, error)
}

// ProfileSource loads the subscription/profile projection for a user,
// returning nil when no profile exists
type ProfileSource interface {
	FindProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}

// ProfileResolver reads entitlement from the profiles projection
type ProfileResolver struct {
	profiles ProfileSource
}

// NewProfileResolver creates a resolver backed by the given profile source
func NewProfileResolver(profiles ProfileSource) *ProfileResolver {
	return &ProfileResolver{profiles: profiles}
}

// Resolve returns TierCustomizable when the subscription status is active or
// the plan is the paid tier. A missing profile means TierFree. A lookup
// error also reports TierFree so the caller can fail closed.
func (r *ProfileResolver) Resolve(ctx context.Context, userID uuid.UUID) (Tier, error) {
	profile, err := r.profiles.FindProfile(ctx, userID)
	if err != nil {
		return TierFree, err
	}
	if profile == nil {
		return TierFree, nil
	}
	if profile.SubscriptionStatus == statusActive || profile.Plan == paidPlan {
		return TierCustomizable, nil
	}
	return TierFree, nil
}

// Effective applies the compensating override: a free-tier caller supplying
// a non-empty custom slug is treated as customizable for this operation
// only. This covers the lag between payment-provider webhooks and the
// entitlement store; it is recomputed per request and never persisted.
func Effective(tier Tier, wantsCustomSlug bool) Tier {
	if tier == TierCustomizable || wantsCustomSlug {
		return TierCustomizable
	}
	return TierFree
}
