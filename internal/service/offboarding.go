// internal/service/offboarding.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/equitylearn/entitlements/internal/audit"
	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/email"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/repository"
	"github.com/google/uuid"
)

// Workflow stages reported in offboarding results.
const (
	StageInitiated         = "initiated"
	StageSoftDeleted       = "soft_deleted"
	StageGracePeriod       = "grace_period"
	StageHardDeletePending = "hard_delete_pending"
	StageHardDeleted       = "hard_deleted"
	StageCompleted         = "completed"
	StageCancelled         = "cancelled"
)

// DefaultGracePeriodDays is the window during which a soft-deleted
// organization can still be restored.
const DefaultGracePeriodDays = 30

// OffboardingService runs the staged tenant removal workflow:
// initiated -> soft_deleted -> grace_period -> hard_delete_pending ->
// hard_deleted/completed.
//
// Each stage is a saga of independently committed, idempotent writes, not a
// single transaction. A step failure aborts the remaining steps of that call
// and is reported in the result's Errors; steps already applied stay
// applied, and a retried call converges because every step is an idempotent
// update.
type OffboardingService struct {
	orgs        repository.OrganizationRepositoryIface
	profiles    repository.ProfileRepositoryIface
	subs        repository.SubscriptionRepositoryIface
	seats       repository.SeatAllocationRepositoryIface
	purge       repository.PurgeRepositoryIface
	auditRepo   repository.AuditLogRepositoryIface
	auditLogger audit.Logger
	notifier    email.Notifier
	log         *slog.Logger

	gracePeriodDays int
	now             func() time.Time
}

func NewOffboardingService(
	orgs repository.OrganizationRepositoryIface,
	profiles repository.ProfileRepositoryIface,
	subs repository.SubscriptionRepositoryIface,
	seats repository.SeatAllocationRepositoryIface,
	purge repository.PurgeRepositoryIface,
	auditRepo repository.AuditLogRepositoryIface,
	auditLogger audit.Logger,
	notifier email.Notifier,
	gracePeriodDays int,
	log *slog.Logger,
) *OffboardingService {
	if gracePeriodDays <= 0 {
		gracePeriodDays = DefaultGracePeriodDays
	}
	if notifier == nil {
		notifier = email.NoOpNotifier{}
	}
	return &OffboardingService{
		orgs:            orgs,
		profiles:        profiles,
		subs:            subs,
		seats:           seats,
		purge:           purge,
		auditRepo:       auditRepo,
		auditLogger:     auditLogger,
		notifier:        notifier,
		gracePeriodDays: gracePeriodDays,
		now:             func() time.Time { return time.Now().UTC() },
		log:             log,
	}
}

// SetClock overrides the workflow's time source. Test hook.
func (s *OffboardingService) SetClock(now func() time.Time) {
	s.now = now
}

// OffboardingResult reports what one workflow call did. ItemsDeleted carries
// per-entity-type counts; during soft delete all are zero except the number
// of suspended users.
type OffboardingResult struct {
	OrganizationID      uuid.UUID        `json:"organization_id"`
	Stage               string           `json:"stage"`
	Success             bool             `json:"success"`
	RequestedBy         uuid.UUID        `json:"requested_by"`
	Reason              string           `json:"reason,omitempty"`
	GracePeriodDays     int              `json:"grace_period_days,omitempty"`
	DeletionScheduledAt *time.Time       `json:"deletion_scheduled_at,omitempty"`
	PermanentDeletionAt *time.Time       `json:"permanent_deletion_at,omitempty"`
	UsersSuspended      int64            `json:"users_suspended"`
	ItemsDeleted        map[string]int64 `json:"items_deleted"`
	Errors              []string         `json:"errors,omitempty"`
}

func (r *OffboardingResult) fail(step string, err error) {
	r.Success = false
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", step, err))
}

type InitiateOffboardingInput struct {
	OrganizationID    uuid.UUID
	RequestedBy       uuid.UUID
	Reason            string
	GracePeriodDays   int
	PreserveAuditLogs bool
}

// InitiateOffboarding soft-deletes the organization and suspends its
// members. Fails fast if the organization does not exist or is already
// deleted; later step failures abort the rest of the call but leave earlier
// steps committed.
func (s *OffboardingService) InitiateOffboarding(ctx context.Context, input InitiateOffboardingInput) (*OffboardingResult, error) {
	days := input.GracePeriodDays
	if days <= 0 {
		days = s.gracePeriodDays
	}

	now := s.now()
	permanentAt := now.AddDate(0, 0, days)
	result := &OffboardingResult{
		OrganizationID:      input.OrganizationID,
		Stage:               StageInitiated,
		Success:             true,
		RequestedBy:         input.RequestedBy,
		Reason:              input.Reason,
		GracePeriodDays:     days,
		DeletionScheduledAt: &now,
		PermanentDeletionAt: &permanentAt,
		ItemsDeleted:        map[string]int64{},
	}

	// Precondition: organization exists and is not already deleted.
	org, err := s.orgs.FindByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org.SoftDeleted() {
		return nil, domain.ErrOrganizationDeleted
	}

	// Step 1: soft-delete stamp on the organization.
	if err := s.orgs.SoftDelete(ctx, org.ID, input.RequestedBy, input.Reason, permanentAt); err != nil {
		result.fail("soft_delete_organization", err)
		return result, nil
	}
	result.Stage = StageSoftDeleted

	// Step 2: move the subscription to offboarding; this also marks the
	// billing-provider subscription for cancellation downstream.
	sub, err := s.subs.FindByOrganization(ctx, org.ID)
	switch {
	case err == nil:
		if err := s.subs.UpdateStatus(ctx, sub.ID, model.SubStatusOffboarding); err != nil {
			result.fail("suspend_subscription", err)
			return result, nil
		}
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		// Free-tier organization; nothing to cancel.
	default:
		result.fail("lookup_subscription", err)
		return result, nil
	}

	// Step 3: suspend every member profile.
	suspended, err := s.profiles.SuspendByOrganization(ctx, org.ID)
	if err != nil {
		result.fail("suspend_profiles", err)
		return result, nil
	}
	result.UsersSuspended = suspended

	// Step 4: audit the admin action. Fire-and-forget.
	s.audit(ctx, org.ID, "organization.offboarding_initiated", &input.RequestedBy, map[string]interface{}{
		"reason":                input.Reason,
		"grace_period_days":     days,
		"users_suspended":       suspended,
		"permanent_deletion_at": permanentAt.Format(time.RFC3339),
	})

	// Step 5: notify organization admins. Fire-and-forget.
	s.notifyAdmins(ctx, org, func(to string) error {
		return s.notifier.SendOffboardingNotice(to, org.Name, permanentAt)
	})

	s.log.Info("offboarding initiated",
		"org_id", org.ID, "grace_period_days", days, "users_suspended", suspended)
	return result, nil
}

// CancelOffboarding restores a soft-deleted organization. Valid only during
// the grace period; hard deletion is irreversible.
func (s *OffboardingService) CancelOffboarding(ctx context.Context, orgID, cancelledBy uuid.UUID, reason string) (*OffboardingResult, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.SoftDeleted() {
		return nil, domain.ErrNotSoftDeleted
	}

	result := &OffboardingResult{
		OrganizationID: orgID,
		Stage:          StageCancelled,
		Success:        true,
		RequestedBy:    cancelledBy,
		Reason:         reason,
		ItemsDeleted:   map[string]int64{},
	}

	if err := s.orgs.Restore(ctx, orgID); err != nil {
		result.fail("restore_organization", err)
		return result, nil
	}

	reactivated, err := s.profiles.ReactivateByOrganization(ctx, orgID)
	if err != nil {
		result.fail("reactivate_profiles", err)
		return result, nil
	}
	result.UsersSuspended = 0

	sub, err := s.subs.FindByOrganization(ctx, orgID)
	if err == nil {
		if err := s.subs.UpdateStatus(ctx, sub.ID, model.SubStatusActive); err != nil {
			result.fail("restore_subscription", err)
			return result, nil
		}
	} else if !errors.Is(err, domain.ErrSubscriptionNotFound) {
		result.fail("lookup_subscription", err)
		return result, nil
	}

	s.audit(ctx, orgID, "organization.offboarding_cancelled", &cancelledBy, map[string]interface{}{
		"reason":            reason,
		"users_reactivated": reactivated,
	})

	s.notifyAdmins(ctx, org, func(to string) error {
		return s.notifier.SendCancellationNotice(to, org.Name)
	})

	s.log.Info("offboarding cancelled", "org_id", orgID, "users_reactivated", reactivated)
	return result, nil
}

type HardDeleteInput struct {
	OrganizationID     uuid.UUID
	ExecutedBy         uuid.UUID
	PreserveAuditLogs  bool
	PreserveCompliance bool
}

// ExecuteHardDelete permanently purges a soft-deleted organization after its
// grace period has elapsed. Deletion order is child-first to respect
// foreign-key dependencies; audit logs are archived with a compliance
// retention horizon rather than deleted unless explicitly overridden.
func (s *OffboardingService) ExecuteHardDelete(ctx context.Context, input HardDeleteInput) (*OffboardingResult, error) {
	org, err := s.orgs.FindByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !org.SoftDeleted() {
		return nil, domain.ErrNotSoftDeleted
	}

	// Hard precondition: the grace period must have fully elapsed. The
	// permanent-deletion stamp written at initiation is authoritative, so a
	// per-offboarding grace period longer or shorter than the configured
	// default is honored; the default only covers rows soft-deleted without a
	// stamp. The sweeper derives eligibility from the same stamp.
	now := s.now()
	eligibleAt := org.DeletedAt.AddDate(0, 0, s.gracePeriodDays)
	if org.PermanentDeletionAt != nil {
		eligibleAt = *org.PermanentDeletionAt
	}
	if now.Before(eligibleAt) {
		remaining := int(math.Ceil(eligibleAt.Sub(now).Hours() / 24))
		return nil, fmt.Errorf("%w: %d day(s) remaining before permanent deletion is allowed",
			domain.ErrGracePeriodActive, remaining)
	}

	result := &OffboardingResult{
		OrganizationID: org.ID,
		Stage:          StageHardDeletePending,
		Success:        true,
		RequestedBy:    input.ExecutedBy,
		ItemsDeleted:   map[string]int64{},
	}

	// Child-first purge: enrollments, certificates, case records, profiles,
	// seat allocations, subscriptions, then (conditionally) audit logs and
	// finally the organization row.
	steps := []struct {
		name string
		run  func() (int64, error)
	}{
		{"enrollments", func() (int64, error) { return s.purge.DeleteEnrollments(ctx, org.ID) }},
		{"certificates", func() (int64, error) { return s.purge.DeleteCertificates(ctx, org.ID) }},
		{"case_records", func() (int64, error) { return s.purge.DeleteCaseRecords(ctx, org.ID) }},
		{"profiles", func() (int64, error) { return s.profiles.DeleteByOrganization(ctx, org.ID) }},
		{"seat_allocations", func() (int64, error) { return s.deleteSeatAllocations(ctx, org.ID) }},
		{"subscriptions", func() (int64, error) { return s.subs.DeleteByOrganization(ctx, org.ID) }},
	}
	for _, step := range steps {
		count, err := step.run()
		if err != nil {
			result.fail("delete_"+step.name, err)
			return result, nil
		}
		result.ItemsDeleted[step.name] = count
	}

	// Audit logs: archived with a 7-year retention horizon by default; only
	// an explicit override deletes them outright.
	if input.PreserveAuditLogs || input.PreserveCompliance {
		retainUntil := now.AddDate(0, 0, model.RetentionCompliance)
		archived, err := s.auditRepo.ArchiveByOrganization(ctx, org.ID, retainUntil)
		if err != nil {
			result.fail("archive_audit_logs", err)
			return result, nil
		}
		result.ItemsDeleted["audit_logs_archived"] = archived
	} else {
		deleted, err := s.auditRepo.DeleteByOrganization(ctx, org.ID)
		if err != nil {
			result.fail("delete_audit_logs", err)
			return result, nil
		}
		result.ItemsDeleted["audit_logs"] = deleted
	}

	// Log completion while the organization row still exists, so the entry
	// lands inside the (archived) chain that future queries scoped by this
	// organization ID will resolve against.
	s.audit(ctx, org.ID, "organization.hard_deleted", &input.ExecutedBy, map[string]interface{}{
		"items_deleted":       result.ItemsDeleted,
		"preserve_audit_logs": input.PreserveAuditLogs,
	})

	if err := s.orgs.Delete(ctx, org.ID); err != nil {
		result.fail("delete_organization", err)
		return result, nil
	}

	result.Stage = StageCompleted
	s.log.Info("organization hard-deleted", "org_id", org.ID, "items", result.ItemsDeleted)
	return result, nil
}

// PendingDeletion is one soft-deleted organization awaiting its hard delete.
type PendingDeletion struct {
	OrganizationID      uuid.UUID  `json:"organization_id"`
	Name                string     `json:"name"`
	DeletedAt           *time.Time `json:"deleted_at"`
	PermanentDeletionAt *time.Time `json:"permanent_deletion_at"`
	DaysRemaining       int        `json:"days_remaining"`
	AffectedUsers       int64      `json:"affected_users"`
}

// PendingDeletions lists every soft-deleted organization with the days left
// until it becomes hard-delete eligible, for the sweeper and admin
// dashboards.
func (s *OffboardingService) PendingDeletions(ctx context.Context) ([]PendingDeletion, error) {
	orgs, err := s.orgs.ListSoftDeleted(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pending := make([]PendingDeletion, 0, len(orgs))
	for _, org := range orgs {
		entry := PendingDeletion{
			OrganizationID:      org.ID,
			Name:                org.Name,
			DeletedAt:           org.DeletedAt,
			PermanentDeletionAt: org.PermanentDeletionAt,
		}
		if org.PermanentDeletionAt != nil {
			remaining := int(org.PermanentDeletionAt.Sub(now).Hours()/24) + 1
			if org.PermanentDeletionAt.Before(now) {
				remaining = 0
			}
			entry.DaysRemaining = remaining
		}
		count, err := s.profiles.CountByOrganization(ctx, org.ID)
		if err != nil {
			s.log.Warn("failed to count affected users", "org_id", org.ID, "error", err)
		} else {
			entry.AffectedUsers = count
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

func (s *OffboardingService) deleteSeatAllocations(ctx context.Context, orgID uuid.UUID) (int64, error) {
	sub, err := s.subs.FindByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.seats.DeleteBySubscriptions(ctx, []uuid.UUID{sub.ID})
}

func (s *OffboardingService) audit(ctx context.Context, orgID uuid.UUID, action string, actor *uuid.UUID, details map[string]interface{}) {
	if err := s.auditLogger.LogAdminAction(ctx, audit.Entry{
		OrganizationID: &orgID,
		Action:         action,
		ActorUserID:    actor,
		ResourceType:   "organization",
		ResourceID:     orgID.String(),
		Details:        details,
		Compliance:     true,
	}); err != nil {
		s.log.Warn("audit write failed", "action", action, "org_id", orgID, "error", err)
	}
}

func (s *OffboardingService) notifyAdmins(ctx context.Context, org *model.Organization, send func(to string) error) {
	profiles, err := s.profiles.FindByOrganization(ctx, org.ID)
	if err != nil {
		s.log.Warn("failed to load profiles for notification", "org_id", org.ID, "error", err)
		return
	}
	for _, p := range profiles {
		if p.Role != model.RoleOrgAdmin || p.Email == "" {
			continue
		}
		if err := send(p.Email); err != nil {
			s.log.Warn("offboarding notice failed", "org_id", org.ID, "to", p.Email, "error", err)
		}
	}
}
