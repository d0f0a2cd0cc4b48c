// internal/repository/audit_log.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepositoryIface interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	LastHash(ctx context.Context, orgID *uuid.UUID) (string, error)
	Query(ctx context.Context, params AuditQueryParams) ([]model.AuditLog, int64, error)
	ArchiveByOrganization(ctx context.Context, orgID uuid.UUID, retainUntil time.Time) (int64, error)
	DeleteByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create inserts a new audit entry.
func (r *AuditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// LastHash returns the hash of the most recent entry in the organization's
// chain, or empty when the chain is starting.
func (r *AuditLogRepository) LastHash(ctx context.Context, orgID *uuid.UUID) (string, error) {
	var entry model.AuditLog
	query := r.db.WithContext(ctx).Order("timestamp DESC, created_at DESC")
	if orgID != nil {
		query = query.Where("organization_id = ?", orgID)
	} else {
		query = query.Where("organization_id IS NULL")
	}
	if err := query.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("finding last audit hash: %w", err)
	}
	return entry.Hash, nil
}

// AuditQueryParams holds parameters for querying audit logs.
type AuditQueryParams struct {
	OrganizationID  *uuid.UUID
	Action          string
	ActorUserID     *uuid.UUID
	IncludeArchived bool
	StartTime       time.Time
	EndTime         time.Time
	Limit           int
	Offset          int
}

// Query retrieves audit logs based on the provided parameters. Archived
// entries for hard-deleted organizations remain queryable by organization ID.
func (r *AuditLogRepository) Query(ctx context.Context, params AuditQueryParams) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if params.OrganizationID != nil {
		query = query.Where("organization_id = ?", params.OrganizationID)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.ActorUserID != nil {
		query = query.Where("actor_user_id = ?", params.ActorUserID)
	}
	if !params.IncludeArchived {
		query = query.Where("archived = false")
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting audit logs: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	if err := query.Order("timestamp DESC").Limit(limit).Offset(params.Offset).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("querying audit logs: %w", err)
	}

	return logs, count, nil
}

// ArchiveByOrganization stamps the organization's entries with a compliance
// retention horizon instead of deleting them.
func (r *AuditLogRepository) ArchiveByOrganization(ctx context.Context, orgID uuid.UUID, retainUntil time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.AuditLog{}).
		Where("organization_id = ? AND archived = false", orgID).
		Updates(map[string]interface{}{
			"archived":     true,
			"archived_at":  time.Now().UTC(),
			"retain_until": retainUntil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("archiving audit logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByOrganization removes entries outright. Only the explicit
// preserve-audit-logs=false override reaches this path.
func (r *AuditLogRepository) DeleteByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.AuditLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting audit logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
