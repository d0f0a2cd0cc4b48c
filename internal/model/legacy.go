// internal/model/legacy.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LegacyUserSubscription is the deprecated per-user tier record read by the
// one-shot migrator. Never written by this codebase.
type LegacyUserSubscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	TierName  string    `gorm:"type:text" json:"tier_name"`
	Status    string    `gorm:"type:text" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (LegacyUserSubscription) TableName() string {
	return "legacy_user_subscriptions"
}

// LegacyOrganizationTier is the deprecated per-organization tier field set,
// second source scanned by the migrator.
type LegacyOrganizationTier struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primary_key" json:"organization_id"`
	TierName       string    `gorm:"type:text" json:"tier_name"`
	MaxUsers       int       `gorm:"not null;default:1" json:"max_users"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (LegacyOrganizationTier) TableName() string {
	return "legacy_organization_tiers"
}
