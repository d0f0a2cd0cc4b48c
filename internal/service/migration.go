// internal/service/migration.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/repository"
	"github.com/google/uuid"
)

// MigrationService back-fills the canonical subscription table from the
// deprecated per-user and per-organization tier fields. Every write is
// guarded by an existence check, so the migration is safe to re-run and
// converges to a fixed point; a second run migrates nothing and skips
// everything the first run migrated.
type MigrationService struct {
	legacy   repository.LegacyRepositoryIface
	profiles repository.ProfileRepositoryIface
	subs     repository.SubscriptionRepositoryIface
	seats    repository.SeatAllocationRepositoryIface
	dryRun   bool
	log      *slog.Logger
}

func NewMigrationService(
	legacy repository.LegacyRepositoryIface,
	profiles repository.ProfileRepositoryIface,
	subs repository.SubscriptionRepositoryIface,
	seats repository.SeatAllocationRepositoryIface,
	log *slog.Logger,
) *MigrationService {
	return &MigrationService{
		legacy:   legacy,
		profiles: profiles,
		subs:     subs,
		seats:    seats,
		log:      log,
	}
}

// SetDryRun makes Run log intended writes without applying them.
func (s *MigrationService) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// MigrationError records one row that could not be migrated. Row failures
// never abort the batch.
type MigrationError struct {
	EntityType string `json:"entity_type"`
	ID         string `json:"id"`
	Message    string `json:"message"`
}

// MigrationSummary is the final report of one migrator run.
type MigrationSummary struct {
	DryRun         bool             `json:"dry_run"`
	Phase1Migrated int              `json:"phase1_migrated"`
	Phase1Skipped  int              `json:"phase1_skipped"`
	Phase2Migrated int              `json:"phase2_migrated"`
	Phase2Skipped  int              `json:"phase2_skipped"`
	SeatsAllocated int              `json:"seats_allocated"`
	Errors         []MigrationError `json:"errors,omitempty"`
}

func (sum *MigrationSummary) rowError(entityType, id string, err error) {
	sum.Errors = append(sum.Errors, MigrationError{
		EntityType: entityType,
		ID:         id,
		Message:    err.Error(),
	})
}

// Run executes both migration phases and returns the summary.
func (s *MigrationService) Run(ctx context.Context) (*MigrationSummary, error) {
	summary := &MigrationSummary{DryRun: s.dryRun}

	// During a dry run no rows are written, so the existence checks cannot
	// see earlier rows of the same run. planned stands in for those writes to
	// keep the dry-run counts equal to what a real run would do.
	planned := make(map[uuid.UUID]bool)

	if err := s.migrateUserSubscriptions(ctx, summary, planned); err != nil {
		return summary, err
	}
	if err := s.migrateOrganizationTiers(ctx, summary, planned); err != nil {
		return summary, err
	}

	s.log.Info("legacy migration finished",
		"dry_run", s.dryRun,
		"phase1_migrated", summary.Phase1Migrated,
		"phase1_skipped", summary.Phase1Skipped,
		"phase2_migrated", summary.Phase2Migrated,
		"phase2_skipped", summary.Phase2Skipped,
		"seats_allocated", summary.SeatsAllocated,
		"row_errors", len(summary.Errors))
	return summary, nil
}

// Phase 1: deprecated per-user subscription records. Each one maps to a
// canonical organization subscription plus an active seat for that user.
func (s *MigrationService) migrateUserSubscriptions(ctx context.Context, summary *MigrationSummary, planned map[uuid.UUID]bool) error {
	rows, err := s.legacy.ListUserSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("scanning legacy user subscriptions: %w", err)
	}

	for _, row := range rows {
		profile, err := s.profiles.FindByUserID(ctx, row.UserID)
		if err != nil {
			summary.rowError("legacy_user_subscription", row.ID.String(), err)
			continue
		}
		if profile.OrganizationID == nil {
			summary.rowError("legacy_user_subscription", row.ID.String(),
				errors.New("user has no organization"))
			continue
		}
		orgID := *profile.OrganizationID

		// Idempotence guard: a canonical row already present means this
		// legacy record was migrated on an earlier run.
		if planned[orgID] {
			summary.Phase1Skipped++
			continue
		}
		if _, err := s.subs.FindByOrganization(ctx, orgID); err == nil {
			summary.Phase1Skipped++
			continue
		} else if !errors.Is(err, domain.ErrSubscriptionNotFound) {
			summary.rowError("legacy_user_subscription", row.ID.String(), err)
			continue
		}

		tier := model.ParseTier(row.TierName)
		def := model.TierFor(tier)
		sub := &model.OrganizationSubscription{
			OrganizationID: orgID,
			Tier:           tier,
			Status:         model.SubStatusActive,
			SeatCount:      def.MaxOrganizationMembers,
			SeatsUsed:      1,
		}

		if s.dryRun {
			planned[orgID] = true
			s.log.Info("dry-run: would create subscription",
				"org_id", orgID, "tier", tier, "source", "legacy_user_subscription")
			summary.Phase1Migrated++
			summary.SeatsAllocated++
			continue
		}

		if err := s.subs.Create(ctx, sub); err != nil {
			summary.rowError("legacy_user_subscription", row.ID.String(), err)
			continue
		}
		seat := &model.SeatAllocation{
			SubscriptionID: sub.ID,
			UserID:         row.UserID,
			Status:         model.SeatActive,
			Role:           profile.Role,
		}
		if err := s.seats.Create(ctx, seat); err != nil && !errors.Is(err, domain.ErrSeatConflict) {
			summary.rowError("seat_allocation", row.UserID.String(), err)
		} else {
			summary.SeatsAllocated++
		}
		summary.Phase1Migrated++
	}
	return nil
}

// Phase 2: deprecated per-organization tier fields. Organizations still
// without a canonical row get one, with the legacy max-users value as the
// seat count.
func (s *MigrationService) migrateOrganizationTiers(ctx context.Context, summary *MigrationSummary, planned map[uuid.UUID]bool) error {
	rows, err := s.legacy.ListOrganizationTiers(ctx)
	if err != nil {
		return fmt.Errorf("scanning legacy organization tiers: %w", err)
	}

	for _, row := range rows {
		if planned[row.OrganizationID] {
			summary.Phase2Skipped++
			continue
		}
		if _, err := s.subs.FindByOrganization(ctx, row.OrganizationID); err == nil {
			summary.Phase2Skipped++
			continue
		} else if !errors.Is(err, domain.ErrSubscriptionNotFound) {
			summary.rowError("legacy_organization_tier", row.OrganizationID.String(), err)
			continue
		}

		tier := model.ParseTier(row.TierName)
		seatCount := row.MaxUsers
		if seatCount <= 0 {
			seatCount = 1
		}
		sub := &model.OrganizationSubscription{
			OrganizationID: row.OrganizationID,
			Tier:           tier,
			Status:         model.SubStatusActive,
			SeatCount:      seatCount,
		}

		if s.dryRun {
			planned[row.OrganizationID] = true
			s.log.Info("dry-run: would create subscription",
				"org_id", row.OrganizationID, "tier", tier, "source", "legacy_organization_tier")
			summary.Phase2Migrated++
			continue
		}

		if err := s.subs.Create(ctx, sub); err != nil {
			summary.rowError("legacy_organization_tier", row.OrganizationID.String(), err)
			continue
		}
		summary.Phase2Migrated++
	}
	return nil
}
