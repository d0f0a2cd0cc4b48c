// internal/repository/subscription.go
package repository

import (
	"context"
	"fmt"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryIface interface {
	Create(ctx context.Context, sub *model.OrganizationSubscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrganizationSubscription, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) (*model.OrganizationSubscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SubscriptionStatus) error
	AdjustSeatsUsed(ctx context.Context, id uuid.UUID, delta int) error
	DeleteByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *model.OrganizationSubscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("creating subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.OrganizationSubscription, error) {
	var sub model.OrganizationSubscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrSubscriptionNotFound)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) (*model.OrganizationSubscription, error) {
	var sub model.OrganizationSubscription
	if err := r.db.WithContext(ctx).First(&sub, "organization_id = ?", orgID).Error; err != nil {
		return nil, notFound(err, domain.ErrSubscriptionNotFound)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SubscriptionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.OrganizationSubscription{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("updating subscription status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// AdjustSeatsUsed applies a relative change to the cached seats_used counter.
// The update is a single SQL expression so concurrent adjustments do not lose
// increments; the counter is clamped at zero.
func (r *SubscriptionRepository) AdjustSeatsUsed(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).Model(&model.OrganizationSubscription{}).
		Where("id = ?", id).
		Update("seats_used", gorm.Expr("GREATEST(seats_used + ?, 0)", delta))
	if result.Error != nil {
		return fmt.Errorf("adjusting seats used: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.OrganizationSubscription{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting organization subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
