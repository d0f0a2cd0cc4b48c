// internal/repository/legacy.go
package repository

import (
	"context"
	"fmt"

	"github.com/equitylearn/entitlements/internal/model"
	"gorm.io/gorm"
)

type LegacyRepositoryIface interface {
	ListUserSubscriptions(ctx context.Context) ([]*model.LegacyUserSubscription, error)
	ListOrganizationTiers(ctx context.Context) ([]*model.LegacyOrganizationTier, error)
}

// LegacyRepository reads the deprecated tier tables consumed by the one-shot
// migrator. Read-only by construction.
type LegacyRepository struct {
	db *gorm.DB
}

func NewLegacyRepository(db *gorm.DB) *LegacyRepository {
	return &LegacyRepository{db: db}
}

func (r *LegacyRepository) ListUserSubscriptions(ctx context.Context) ([]*model.LegacyUserSubscription, error) {
	var subs []*model.LegacyUserSubscription
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("listing legacy user subscriptions: %w", err)
	}
	return subs, nil
}

func (r *LegacyRepository) ListOrganizationTiers(ctx context.Context) ([]*model.LegacyOrganizationTier, error) {
	var tiers []*model.LegacyOrganizationTier
	if err := r.db.WithContext(ctx).Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("listing legacy organization tiers: %w", err)
	}
	return tiers, nil
}
