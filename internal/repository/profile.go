// internal/repository/profile.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepositoryIface interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Profile, error)
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
	SuspendByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
	ReactivateByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
	DeleteByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, domain.ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Profile, error) {
	var profiles []*model.Profile
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("finding organization profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("organization_id = ?", orgID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting organization profiles: %w", err)
	}
	return count, nil
}

// SuspendByOrganization marks every member profile suspended and stamps the
// time offboarding touched it. Returns the number of profiles affected.
func (r *ProfileRepository) SuspendByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("organization_id = ? AND status = ?", orgID, model.ProfileActive).
		Updates(map[string]interface{}{
			"status":       model.ProfileSuspended,
			"suspended_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("suspending organization profiles: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ReactivateByOrganization reverses a suspension sweep after a cancelled
// offboarding.
func (r *ProfileRepository) ReactivateByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("organization_id = ? AND status = ?", orgID, model.ProfileSuspended).
		Updates(map[string]interface{}{
			"status":       model.ProfileActive,
			"suspended_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("reactivating organization profiles: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ProfileRepository) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.Profile{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting organization profiles: %w", result.Error)
	}
	return result.RowsAffected, nil
}
