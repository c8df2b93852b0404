package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThemeCustom marks a fully custom color scheme. Its color data lives inside
// the opaque menu payload, so saves with this theme always force a write.
const ThemeCustom = "custom"

// Menu represents a published menu record for one business of one user.
// The custom_slug unique index is the authoritative uniqueness guarantee for
// slugs; the (user_id, business_id) index keeps one record per business.
type Menu struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_menus_user_business"`
	BusinessID   string          `json:"business_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_menus_user_business"`
	BusinessName string          `json:"business_name" gorm:"type:varchar(255);not null"`
	Theme        string          `json:"theme" gorm:"type:varchar(64)"`
	MenuData     json.RawMessage `json:"menu_data" gorm:"type:jsonb"`
	CustomSlug   *string         `json:"custom_slug" gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
