package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the subscription/entitlement projection for a user, kept in
// sync by the billing webhooks of the surrounding system. The engine only
// reads it.
type Profile struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email              string    `json:"email" gorm:"type:varchar(255)"`
	Plan               string    `json:"plan" gorm:"type:varchar(32);default:'free'"`
	SubscriptionStatus string    `json:"subscription_status" gorm:"type:varchar(32)"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
