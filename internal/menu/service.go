// Package menu implements the record reconciliation engine: for every save
// of a business's menu it decides whether a slug is auto-derived, kept, or
// replaced, and whether the record is inserted, updated, or left untouched.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryansgue/scanela-sub001/internal/model"
	"github.com/bryansgue/scanela-sub001/internal/plan"
	"github.com/bryansgue/scanela-sub001/internal/slug"
)

// Store is the persistence contract consumed by the reconciler. Find
// operations report absence as (nil, nil) rather than an error; Insert and
// Update wrap uniqueness violations in ErrConstraint. Each write is a single
// atomic statement.
type Store interface {
	FindRecord(ctx context.Context, userID uuid.UUID, businessID string) (*model.Menu, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error)
	Insert(ctx context.Context, m *model.Menu) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Menu, error)
	FindPublished(ctx context.Context, slug string) (*model.Menu, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Menu, error)
}

// SaveRequest is one inbound save of a business's menu
type SaveRequest struct {
	UserID       uuid.UUID
	BusinessID   BusinessID
	BusinessName string
	Theme        string
	MenuData     json.RawMessage
	CustomSlug   string
}

// Result reports the reconciliation outcome with an explicit tag
type Result struct {
	Created bool
	Updated bool
	Skipped bool
	Menu    *model.Menu
}

// Outcome returns the tag for logging and metrics
func (r *Result) Outcome() string {
	switch {
	case r.Created:
		return "created"
	case r.Updated:
		return "updated"
	default:
		return "skipped"
	}
}

// Service is the record reconciler. It holds no cross-request state; all
// shared state lives in the store.
type Service struct {
	store   Store
	plans   plan.Resolver
	alloc   *slug.Allocator
	siteURL string
	log     *zap.Logger
	now     func() time.Time
}

// NewService wires the reconciler to its collaborators
func NewService(store Store, plans plan.Resolver, alloc *slug.Allocator, siteURL string, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		plans:   plans,
		alloc:   alloc,
		siteURL: strings.TrimRight(siteURL, "/"),
		log:     log,
		now:     time.Now,
	}
}

// Save reconciles one save request against the existing record for the
// (user, business) pair, inserting, updating, or skipping as needed.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*Result, error) {
	existing, err := s.store.FindRecord(ctx, req.UserID, req.BusinessID.Query)
	if err != nil {
		return nil, fmt.Errorf("loading menu: %w", err)
	}

	wantsSlug := strings.TrimSpace(req.CustomSlug) != ""
	tier := s.effectiveTier(ctx, req.UserID, wantsSlug)

	if existing == nil {
		return s.create(ctx, req, tier)
	}
	return s.update(ctx, req, tier, existing)
}

// effectiveTier resolves entitlement with the compensating override. When
// entitlement data is unavailable the caller stays free and the override is
// not applied: personalization is never unlocked on missing data.
func (s *Service) effectiveTier(ctx context.Context, userID uuid.UUID, wantsSlug bool) plan.Tier {
	tier, err := s.plans.Resolve(ctx, userID)
	if err != nil {
		s.log.Warn("entitlement lookup failed, treating caller as free",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return plan.TierFree
	}
	return plan.Effective(tier, wantsSlug)
}

func (s *Service) create(ctx context.Context, req SaveRequest, tier plan.Tier) (*Result, error) {
	seed := slugSeed(req.UserID, req.BusinessID.Query)

	var chosen string
	var base string
	userChoice := false

	if tier == plan.TierCustomizable && strings.TrimSpace(req.CustomSlug) != "" {
		normalized, err := slug.Normalize(req.CustomSlug)
		if err != nil {
			return nil, err
		}
		if err := s.alloc.ValidateChoice(ctx, normalized, seed, uuid.Nil); err != nil {
			return nil, err
		}
		chosen = normalized
		userChoice = true
	} else {
		// free tier, or customizable without an explicit choice: derive
		// from the business name. A slug sent by a free-tier caller that
		// did not trigger the override is ignored for slug purposes.
		var err error
		base, err = slug.Normalize(req.BusinessName)
		if err != nil {
			return nil, err
		}
		chosen, err = s.alloc.Allocate(ctx, base, seed, uuid.Nil)
		if err != nil {
			return nil, err
		}
	}

	rec := &model.Menu{
		ID:           uuid.New(),
		UserID:       req.UserID,
		BusinessID:   req.BusinessID.Query,
		BusinessName: req.BusinessName,
		Theme:        req.Theme,
		MenuData:     req.MenuData,
		CustomSlug:   &chosen,
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		if !errors.Is(err, ErrConstraint) {
			return nil, fmt.Errorf("inserting menu: %w", err)
		}
		if userChoice {
			// never silently override an explicit user choice
			return nil, &slug.ConflictError{Slug: chosen, Suggestion: s.alloc.Suffixed(chosen, seed)}
		}
		// the advisory pre-check lost a race; retry once with a fresh
		// fingerprint before failing
		retry := s.alloc.Suffixed(base, seed)
		s.log.Warn("slug constraint violated on insert, retrying with fresh fingerprint",
			zap.String("slug", chosen),
			zap.String("retry_slug", retry))
		rec.CustomSlug = &retry
		if err := s.store.Insert(ctx, rec); err != nil {
			return nil, fmt.Errorf("inserting menu after slug retry: %w", err)
		}
	}

	return &Result{Created: true, Menu: rec}, nil
}

func (s *Service) update(ctx context.Context, req SaveRequest, tier plan.Tier, existing *model.Menu) (*Result, error) {
	seed := slugSeed(req.UserID, req.BusinessID.Query)

	// slug policy: only an entitled caller supplying a non-empty slug may
	// replace it; in every other case the existing slug is preserved
	// untouched, regardless of business name changes
	nextSlug := existing.CustomSlug
	userChoice := false
	if tier == plan.TierCustomizable && strings.TrimSpace(req.CustomSlug) != "" {
		normalized, err := slug.Normalize(req.CustomSlug)
		if err != nil {
			return nil, err
		}
		if existing.CustomSlug == nil || *existing.CustomSlug != normalized {
			if err := s.alloc.ValidateChoice(ctx, normalized, seed, existing.ID); err != nil {
				return nil, err
			}
			nextSlug = &normalized
			userChoice = true
		}
	}

	// a fully custom color scheme keeps its color data inside the opaque
	// payload, so a field comparison could miss a change
	force := req.Theme == model.ThemeCustom

	changed := force ||
		existing.BusinessName != req.BusinessName ||
		existing.Theme != req.Theme ||
		!slugsEqual(existing.CustomSlug, nextSlug) ||
		!jsonEqual(existing.MenuData, req.MenuData)

	if !changed {
		return &Result{Skipped: true, Menu: existing}, nil
	}

	fields := map[string]any{
		"business_name": req.BusinessName,
		"theme":         req.Theme,
		"menu_data":     req.MenuData,
		"custom_slug":   nextSlug,
		"updated_at":    s.now(),
	}

	updated, err := s.store.Update(ctx, existing.ID, fields)
	if err != nil {
		if errors.Is(err, ErrConstraint) && userChoice {
			return nil, &slug.ConflictError{Slug: *nextSlug, Suggestion: s.alloc.Suffixed(*nextSlug, seed)}
		}
		return nil, fmt.Errorf("updating menu: %w", err)
	}

	return &Result{Updated: true, Menu: updated}, nil
}

// Personalize replaces the slug of an owned record with an explicit user
// choice. The record must belong to the caller.
func (s *Service) Personalize(ctx context.Context, userID, menuID uuid.UUID, rawSlug string) (*model.Menu, string, error) {
	rec, err := s.store.FindByID(ctx, menuID)
	if err != nil {
		return nil, "", fmt.Errorf("loading menu: %w", err)
	}
	if rec == nil {
		return nil, "", ErrNotFound
	}
	if rec.UserID != userID {
		return nil, "", ErrNotOwner
	}

	normalized, err := slug.Normalize(rawSlug)
	if err != nil {
		return nil, "", err
	}

	if rec.CustomSlug != nil && *rec.CustomSlug == normalized {
		return rec, s.ShareURL(normalized), nil
	}

	seed := slugSeed(userID, rec.BusinessID)
	if err := s.alloc.ValidateChoice(ctx, normalized, seed, rec.ID); err != nil {
		return nil, "", err
	}

	updated, err := s.store.Update(ctx, rec.ID, map[string]any{
		"custom_slug": &normalized,
		"updated_at":  s.now(),
	})
	if err != nil {
		if errors.Is(err, ErrConstraint) {
			return nil, "", &slug.ConflictError{Slug: normalized, Suggestion: s.alloc.Suffixed(normalized, seed)}
		}
		return nil, "", fmt.Errorf("updating slug: %w", err)
	}

	return updated, s.ShareURL(normalized), nil
}

// Load returns the caller's menu for a business, or nil when none exists
func (s *Service) Load(ctx context.Context, userID uuid.UUID, businessID BusinessID) (*model.Menu, error) {
	return s.store.FindRecord(ctx, userID, businessID.Query)
}

// LoadAll returns every menu owned by the caller
func (s *Service) LoadAll(ctx context.Context, userID uuid.UUID) ([]model.Menu, error) {
	return s.store.ListByUser(ctx, userID)
}

// Resolve finds a published menu by its slug
func (s *Service) Resolve(ctx context.Context, slugValue string) (*model.Menu, error) {
	rec, err := s.store.FindPublished(ctx, slugValue)
	if err != nil {
		return nil, fmt.Errorf("resolving slug: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// ShareURL builds the public URL for a slug
func (s *Service) ShareURL(slugValue string) string {
	return s.siteURL + "/" + slugValue
}

func slugSeed(userID uuid.UUID, businessID string) string {
	return userID.String() + ":" + businessID
}

func slugsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// jsonEqual compares two opaque payloads structurally, so formatting and key
// order differences do not count as changes
func jsonEqual(a, b json.RawMessage) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	var av, bv any
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return string(a) == string(b)
	}
	return reflect.DeepEqual(av, bv)
}
