// internal/repository/organization.go
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

type OrganizationRepositoryIface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	SoftDelete(ctx context.Context, id uuid.UUID, by uuid.UUID, reason string, permanentAt time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListSoftDeleted(ctx context.Context) ([]*model.Organization, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrOrganizationNotFound)
	}
	return &org, nil
}

// SoftDelete stamps the organization as deleted and records who asked, why,
// and when the hard delete becomes eligible. Idempotent update, safe to retry.
func (r *OrganizationRepository) SoftDelete(ctx context.Context, id uuid.UUID, by uuid.UUID, reason string, permanentAt time.Time) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                model.OrgStatusOffboarding,
			"deleted_at":            now,
			"offboarding_reason":    reason,
			"offboarding_by":        by,
			"permanent_deletion_at": permanentAt,
		})
	if result.Error != nil {
		return fmt.Errorf("soft-deleting organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// Restore clears the soft-delete stamp, returning the organization to active.
func (r *OrganizationRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                model.OrgStatusActive,
			"deleted_at":            nil,
			"offboarding_reason":    "",
			"offboarding_by":        nil,
			"permanent_deletion_at": nil,
		})
	if result.Error != nil {
		return fmt.Errorf("restoring organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// Delete removes the organization row itself. Final step of the hard-delete
// cascade; all children must already be gone.
func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Organization{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) ListSoftDeleted(ctx context.Context) ([]*model.Organization, error) {
	var orgs []*model.Organization
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL").
		Order("permanent_deletion_at ASC").
		Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("listing soft-deleted organizations: %w", err)
	}
	return orgs, nil
}
