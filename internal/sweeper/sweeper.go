// internal/sweeper/sweeper.go
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/equitylearn/entitlements/internal/service"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// systemActor identifies the sweeper in audit trails for automated hard
// deletes.
var systemActor = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Sweeper periodically surveys soft-deleted organizations and, when
// automatic hard deletion is enabled, purges the ones whose grace period
// has elapsed. Eligible-but-not-purged organizations are only logged so an
// operator can act on them.
type Sweeper struct {
	offboarding    *service.OffboardingService
	autoHardDelete bool
	log            *slog.Logger
	cron           *cron.Cron
}

func New(offboarding *service.OffboardingService, autoHardDelete bool, log *slog.Logger) *Sweeper {
	return &Sweeper{
		offboarding:    offboarding,
		autoHardDelete: autoHardDelete,
		log:            log,
		cron:           cron.New(),
	}
}

// Start schedules the hourly sweep.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pending, err := s.offboarding.PendingDeletions(ctx)
	if err != nil {
		s.log.Error("sweep failed to list pending deletions", "error", err)
		return
	}

	for _, entry := range pending {
		if entry.DaysRemaining > 0 {
			s.log.Info("organization pending deletion",
				"org_id", entry.OrganizationID,
				"days_remaining", entry.DaysRemaining,
				"affected_users", entry.AffectedUsers)
			continue
		}

		if !s.autoHardDelete {
			s.log.Warn("organization eligible for hard delete",
				"org_id", entry.OrganizationID,
				"affected_users", entry.AffectedUsers)
			continue
		}

		result, err := s.offboarding.ExecuteHardDelete(ctx, service.HardDeleteInput{
			OrganizationID:    entry.OrganizationID,
			ExecutedBy:        systemActor,
			PreserveAuditLogs: true,
		})
		if err != nil {
			s.log.Error("automatic hard delete failed",
				"org_id", entry.OrganizationID, "error", err)
			continue
		}
		s.log.Info("automatic hard delete completed",
			"org_id", entry.OrganizationID,
			"success", result.Success,
			"items", result.ItemsDeleted)
	}
}
