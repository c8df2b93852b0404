// Package store backs the reconciliation engine with gorm/Postgres. The
// unique indexes declared on the models are the authoritative uniqueness
// guarantees; duplicate-key errors are reported as menu.ErrConstraint.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bryansgue/scanela-sub001/internal/menu"
	"github.com/bryansgue/scanela-sub001/internal/model"
	"github.com/bryansgue/scanela-sub001/prometheus"
)

// Store implements menu.Store, slug.Oracle, and plan.ProfileSource on one
// gorm connection
type Store struct {
	db *gorm.DB
}

// New wraps a gorm connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindRecord loads the menu for a (user, business) pair, nil when absent
func (s *Store) FindRecord(ctx context.Context, userID uuid.UUID, businessID string) (*model.Menu, error) {
	defer prometheus.TrackDBOperation("find_record")(time.Now())

	var m model.Menu
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByID loads a menu by its primary key, nil when absent
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	defer prometheus.TrackDBOperation("find_by_id")(time.Now())

	var m model.Menu
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindBySlug returns the id of the record holding the slug, excluding one
// record when updating. uuid.Nil means the slug is free.
func (s *Store) FindBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (uuid.UUID, error) {
	defer prometheus.TrackDBOperation("find_by_slug")(time.Now())

	query := s.db.WithContext(ctx).
		Model(&model.Menu{}).
		Where("custom_slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var m model.Menu
	err := query.Select("id").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return m.ID, nil
}

// IsTaken adapts FindBySlug to the allocator's oracle contract
func (s *Store) IsTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	id, err := s.FindBySlug(ctx, slug, excludeID)
	return id != uuid.Nil, err
}

// Insert creates a new menu record as one atomic statement
func (s *Store) Insert(ctx context.Context, m *model.Menu) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateConstraint(err)
	}
	return nil
}

// Update applies the given fields to one record as one atomic statement and
// returns the refreshed record
func (s *Store) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Menu, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.WithContext(ctx).
		Model(&model.Menu{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, translateConstraint(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, menu.ErrNotFound
	}

	var m model.Menu
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPublished resolves a public slug to its record, nil when unknown
func (s *Store) FindPublished(ctx context.Context, slug string) (*model.Menu, error) {
	defer prometheus.TrackDBOperation("find_published")(time.Now())

	var m model.Menu
	err := s.db.WithContext(ctx).First(&m, "custom_slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns every menu owned by a user, newest first
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Menu, error) {
	defer prometheus.TrackDBOperation("list_by_user")(time.Now())

	var menus []model.Menu
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// FindProfile loads the entitlement projection for a user, nil when absent
func (s *Store) FindProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	defer prometheus.TrackDBOperation("find_profile")(time.Now())

	var p model.Profile
	err := s.db.WithContext(ctx).First(&p, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func translateConstraint(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", menu.ErrConstraint, err)
	}
	return err
}
