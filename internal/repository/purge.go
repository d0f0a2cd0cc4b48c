// internal/repository/purge.go
package repository

import (
	"context"
	"fmt"

	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurgeRepositoryIface interface {
	DeleteEnrollments(ctx context.Context, orgID uuid.UUID) (int64, error)
	DeleteCertificates(ctx context.Context, orgID uuid.UUID) (int64, error)
	DeleteCaseRecords(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// PurgeRepository removes the domain tables touched only during the
// hard-delete cascade. Deletion order is the caller's responsibility.
type PurgeRepository struct {
	db *gorm.DB
}

func NewPurgeRepository(db *gorm.DB) *PurgeRepository {
	return &PurgeRepository{db: db}
}

func (r *PurgeRepository) DeleteEnrollments(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.Enrollment{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting enrollments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PurgeRepository) DeleteCertificates(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.Certificate{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting certificates: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PurgeRepository) DeleteCaseRecords(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.CaseRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting case records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
