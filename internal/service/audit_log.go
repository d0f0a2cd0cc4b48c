// internal/service/audit_log.go
package service

import (
	"context"
	"time"

	"github.com/equitylearn/entitlements/internal/audit"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/repository"
)

// Ensure AuditLogService implements the audit.Logger interface
var _ audit.Logger = (*AuditLogService)(nil)

// AuditLogService writes tamper-evident audit entries. Each entry's hash
// covers its content plus the previous entry's hash for the same
// organization, so a silently edited or removed row breaks the chain.
type AuditLogService struct {
	repo repository.AuditLogRepositoryIface
}

func NewAuditLogService(repo repository.AuditLogRepositoryIface) *AuditLogService {
	return &AuditLogService{repo: repo}
}

// LogAdminAction records an administrative action against an organization.
// Callers treat this as fire-and-forget: a returned error is logged by the
// caller, never propagated to the business operation.
func (s *AuditLogService) LogAdminAction(ctx context.Context, entry audit.Entry) error {
	record := &model.AuditLog{
		OrganizationID:  entry.OrganizationID,
		Action:          entry.Action,
		ActorUserID:     entry.ActorUserID,
		ResourceType:    entry.ResourceType,
		ResourceID:      entry.ResourceID,
		Details:         model.JSONMap(entry.Details),
		IPAddress:       entry.IPAddress,
		RetentionDays:   model.RetentionDefault,
		ComplianceLevel: model.ComplianceStandard,
		DataClass:       model.DataClassInternal,
		Timestamp:       time.Now().UTC(),
	}
	if entry.Compliance {
		record.RetentionDays = model.RetentionCompliance
		record.ComplianceLevel = model.ComplianceHigh
	}
	if entry.Sensitive {
		record.DataClass = model.DataClassSensitive
	}

	prev, err := s.repo.LastHash(ctx, entry.OrganizationID)
	if err != nil {
		// A broken chain lookup must not block the write; the entry starts a
		// new chain segment instead.
		prev = ""
	}
	record.PrevHash = prev
	record.Hash = record.ComputeHash(prev)

	return s.repo.Create(ctx, record)
}

// Query exposes the audit trail for admin dashboards and compliance review.
// Archived entries from hard-deleted organizations remain reachable here.
func (s *AuditLogService) Query(ctx context.Context, params repository.AuditQueryParams) ([]model.AuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}
