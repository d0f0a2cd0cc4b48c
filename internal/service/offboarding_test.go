package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/equitylearn/entitlements/internal/audit"
	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/email"
	"github.com/equitylearn/entitlements/internal/mocks"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type offboardingFixture struct {
	orgs      *mocks.MockOrganizationRepositoryIface
	profiles  *mocks.MockProfileRepositoryIface
	subs      *mocks.MockSubscriptionRepositoryIface
	seats     *mocks.MockSeatAllocationRepositoryIface
	purge     *mocks.MockPurgeRepositoryIface
	auditRepo *mocks.MockAuditLogRepositoryIface
	svc       *service.OffboardingService
}

func newOffboardingFixture(ctrl *gomock.Controller) *offboardingFixture {
	fx := &offboardingFixture{
		orgs:      mocks.NewMockOrganizationRepositoryIface(ctrl),
		profiles:  mocks.NewMockProfileRepositoryIface(ctrl),
		subs:      mocks.NewMockSubscriptionRepositoryIface(ctrl),
		seats:     mocks.NewMockSeatAllocationRepositoryIface(ctrl),
		purge:     mocks.NewMockPurgeRepositoryIface(ctrl),
		auditRepo: mocks.NewMockAuditLogRepositoryIface(ctrl),
	}
	fx.svc = service.NewOffboardingService(
		fx.orgs,
		fx.profiles,
		fx.subs,
		fx.seats,
		fx.purge,
		fx.auditRepo,
		&audit.NoOpLogger{},
		email.NoOpNotifier{},
		service.DefaultGracePeriodDays,
		newTestLogger(),
	)
	return fx
}

func TestInitiateOffboarding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	subID := uuid.New()
	adminID := uuid.New()

	t.Run("soft-deletes and suspends members", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		fx.svc.SetClock(func() time.Time { return now })
		permanentAt := now.AddDate(0, 0, service.DefaultGracePeriodDays)

		fx.orgs.EXPECT().
			FindByID(gomock.Any(), orgID).
			Return(&model.Organization{ID: orgID, Name: "Acme Education"}, nil)
		fx.orgs.EXPECT().
			SoftDelete(gomock.Any(), orgID, adminID, "contract ended", permanentAt).
			Return(nil)
		fx.subs.EXPECT().
			FindByOrganization(gomock.Any(), orgID).
			Return(&model.OrganizationSubscription{ID: subID, OrganizationID: orgID, Status: model.SubStatusActive}, nil)
		fx.subs.EXPECT().
			UpdateStatus(gomock.Any(), subID, model.SubStatusOffboarding).
			Return(nil)
		fx.profiles.EXPECT().
			SuspendByOrganization(gomock.Any(), orgID).
			Return(int64(7), nil)
		fx.profiles.EXPECT().
			FindByOrganization(gomock.Any(), orgID).
			Return([]*model.Profile{
				{UserID: adminID, Email: "admin@acme.test", Role: model.RoleOrgAdmin},
				{UserID: uuid.New(), Email: "learner@acme.test", Role: model.RoleLearner},
			}, nil)

		result, err := fx.svc.InitiateOffboarding(context.Background(), service.InitiateOffboardingInput{
			OrganizationID:    orgID,
			RequestedBy:       adminID,
			Reason:            "contract ended",
			PreserveAuditLogs: true,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, service.StageSoftDeleted, result.Stage)
		assert.Equal(t, int64(7), result.UsersSuspended)
		require.NotNil(t, result.PermanentDeletionAt)
		assert.Equal(t, permanentAt, *result.PermanentDeletionAt)
	})

	t.Run("already deleted organization is rejected", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		deletedAt := time.Now().UTC().Add(-24 * time.Hour)
		fx.orgs.EXPECT().
			FindByID(gomock.Any(), orgID).
			Return(&model.Organization{ID: orgID, DeletedAt: &deletedAt}, nil)

		_, err := fx.svc.InitiateOffboarding(context.Background(), service.InitiateOffboardingInput{
			OrganizationID: orgID,
			RequestedBy:    adminID,
		})
		assert.ErrorIs(t, err, domain.ErrOrganizationDeleted)
	})

	t.Run("step failure aborts the rest but reports partial progress", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		fx.orgs.EXPECT().
			FindByID(gomock.Any(), orgID).
			Return(&model.Organization{ID: orgID, Name: "Acme Education"}, nil)
		fx.orgs.EXPECT().
			SoftDelete(gomock.Any(), orgID, adminID, gomock.Any(), gomock.Any()).
			Return(nil)
		fx.subs.EXPECT().
			FindByOrganization(gomock.Any(), orgID).
			Return(nil, domain.ErrSubscriptionNotFound)
		fx.profiles.EXPECT().
			SuspendByOrganization(gomock.Any(), orgID).
			Return(int64(0), assert.AnError)

		result, err := fx.svc.InitiateOffboarding(context.Background(), service.InitiateOffboardingInput{
			OrganizationID: orgID,
			RequestedBy:    adminID,
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, service.StageSoftDeleted, result.Stage)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "suspend_profiles")
	})
}

func TestCancelOffboarding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	subID := uuid.New()
	adminID := uuid.New()

	t.Run("restores the organization and reactivates members", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		deletedAt := time.Now().UTC().Add(-72 * time.Hour)
		org := &model.Organization{ID: orgID, Name: "Acme Education", DeletedAt: &deletedAt}

		fx.orgs.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)
		fx.orgs.EXPECT().Restore(gomock.Any(), orgID).Return(nil)
		fx.profiles.EXPECT().
			ReactivateByOrganization(gomock.Any(), orgID).
			Return(int64(7), nil)
		fx.subs.EXPECT().
			FindByOrganization(gomock.Any(), orgID).
			Return(&model.OrganizationSubscription{ID: subID, OrganizationID: orgID, Status: model.SubStatusOffboarding}, nil)
		fx.subs.EXPECT().
			UpdateStatus(gomock.Any(), subID, model.SubStatusActive).
			Return(nil)
		fx.profiles.EXPECT().
			FindByOrganization(gomock.Any(), orgID).
			Return(nil, nil)

		result, err := fx.svc.CancelOffboarding(context.Background(), orgID, adminID, "renewed contract")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, service.StageCancelled, result.Stage)
	})

	t.Run("active organization cannot be cancelled", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		fx.orgs.EXPECT().
			FindByID(gomock.Any(), orgID).
			Return(&model.Organization{ID: orgID}, nil)

		_, err := fx.svc.CancelOffboarding(context.Background(), orgID, adminID, "")
		assert.ErrorIs(t, err, domain.ErrNotSoftDeleted)
	})
}

func TestExecuteHardDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	subID := uuid.New()
	adminID := uuid.New()

	deletedAt := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	permanentAt := deletedAt.AddDate(0, 0, service.DefaultGracePeriodDays)
	org := &model.Organization{
		ID:                  orgID,
		Name:                "Acme Education",
		DeletedAt:           &deletedAt,
		PermanentDeletionAt: &permanentAt,
	}

	t.Run("rejected while the grace period is active", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		// Day 29 of a 30 day grace period.
		fx.svc.SetClock(func() time.Time { return deletedAt.AddDate(0, 0, 29) })
		fx.orgs.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)

		_, err := fx.svc.ExecuteHardDelete(context.Background(), service.HardDeleteInput{
			OrganizationID: orgID,
			ExecutedBy:     adminID,
		})
		require.ErrorIs(t, err, domain.ErrGracePeriodActive)
		assert.Contains(t, err.Error(), "1 day(s) remaining")
	})

	t.Run("honors a longer per-offboarding grace period", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		// Offboarded with a 60 day grace period. Day 35 is past the service
		// default but still 25 days before the recorded permanent-deletion
		// date, so the purge must be refused.
		extendedAt := deletedAt.AddDate(0, 0, 60)
		extended := &model.Organization{
			ID:                  orgID,
			Name:                "Acme Education",
			DeletedAt:           &deletedAt,
			PermanentDeletionAt: &extendedAt,
		}

		fx.svc.SetClock(func() time.Time { return deletedAt.AddDate(0, 0, 35) })
		fx.orgs.EXPECT().FindByID(gomock.Any(), orgID).Return(extended, nil)

		_, err := fx.svc.ExecuteHardDelete(context.Background(), service.HardDeleteInput{
			OrganizationID: orgID,
			ExecutedBy:     adminID,
		})
		require.ErrorIs(t, err, domain.ErrGracePeriodActive)
		assert.Contains(t, err.Error(), "25 day(s) remaining")
	})

	t.Run("honors a shorter per-offboarding grace period", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		// A 7 day grace period becomes purge-eligible on day 7 even though
		// the service default is 30. This keeps the gate in agreement with
		// the sweeper, which schedules from the same stamp.
		shortAt := deletedAt.AddDate(0, 0, 7)
		short := &model.Organization{
			ID:                  orgID,
			Name:                "Acme Education",
			DeletedAt:           &deletedAt,
			PermanentDeletionAt: &shortAt,
		}

		fx.svc.SetClock(func() time.Time { return shortAt })
		fx.orgs.EXPECT().FindByID(gomock.Any(), orgID).Return(short, nil)

		fx.purge.EXPECT().DeleteEnrollments(gomock.Any(), orgID).Return(int64(0), nil)
		fx.purge.EXPECT().DeleteCertificates(gomock.Any(), orgID).Return(int64(0), nil)
		fx.purge.EXPECT().DeleteCaseRecords(gomock.Any(), orgID).Return(int64(0), nil)
		fx.profiles.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(2), nil)
		fx.subs.EXPECT().FindByOrganization(gomock.Any(), orgID).Return(nil, domain.ErrSubscriptionNotFound)
		fx.subs.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(0), nil)
		fx.auditRepo.EXPECT().
			ArchiveByOrganization(gomock.Any(), orgID, gomock.Any()).
			Return(int64(5), nil)
		fx.orgs.EXPECT().Delete(gomock.Any(), orgID).Return(nil)

		result, err := fx.svc.ExecuteHardDelete(context.Background(), service.HardDeleteInput{
			OrganizationID:    orgID,
			ExecutedBy:        adminID,
			PreserveAuditLogs: true,
		})
		require.NoError(t, err)
		assert.Equal(t, service.StageCompleted, result.Stage)
	})

	t.Run("purges child-first once the grace period elapses", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		now := deletedAt.AddDate(0, 0, service.DefaultGracePeriodDays)
		fx.svc.SetClock(func() time.Time { return now })

		fx.orgs.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)

		sub := &model.OrganizationSubscription{ID: subID, OrganizationID: orgID}
		gomock.InOrder(
			fx.purge.EXPECT().DeleteEnrollments(gomock.Any(), orgID).Return(int64(120), nil),
			fx.purge.EXPECT().DeleteCertificates(gomock.Any(), orgID).Return(int64(14), nil),
			fx.purge.EXPECT().DeleteCaseRecords(gomock.Any(), orgID).Return(int64(3), nil),
			fx.profiles.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(7), nil),
			fx.subs.EXPECT().FindByOrganization(gomock.Any(), orgID).Return(sub, nil),
			fx.seats.EXPECT().DeleteBySubscriptions(gomock.Any(), []uuid.UUID{subID}).Return(int64(6), nil),
			fx.subs.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(1), nil),
			fx.auditRepo.EXPECT().
				ArchiveByOrganization(gomock.Any(), orgID, now.AddDate(0, 0, model.RetentionCompliance)).
				Return(int64(42), nil),
			fx.orgs.EXPECT().Delete(gomock.Any(), orgID).Return(nil),
		)

		result, err := fx.svc.ExecuteHardDelete(context.Background(), service.HardDeleteInput{
			OrganizationID:    orgID,
			ExecutedBy:        adminID,
			PreserveAuditLogs: true,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, service.StageCompleted, result.Stage)
		assert.Equal(t, int64(120), result.ItemsDeleted["enrollments"])
		assert.Equal(t, int64(7), result.ItemsDeleted["profiles"])
		assert.Equal(t, int64(42), result.ItemsDeleted["audit_logs_archived"])
	})

	t.Run("explicit override deletes audit logs outright", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		fx.svc.SetClock(func() time.Time { return deletedAt.AddDate(0, 0, 45) })
		fx.orgs.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)

		fx.purge.EXPECT().DeleteEnrollments(gomock.Any(), orgID).Return(int64(0), nil)
		fx.purge.EXPECT().DeleteCertificates(gomock.Any(), orgID).Return(int64(0), nil)
		fx.purge.EXPECT().DeleteCaseRecords(gomock.Any(), orgID).Return(int64(0), nil)
		fx.profiles.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(0), nil)
		fx.subs.EXPECT().FindByOrganization(gomock.Any(), orgID).Return(nil, domain.ErrSubscriptionNotFound)
		fx.subs.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(0), nil)
		fx.auditRepo.EXPECT().DeleteByOrganization(gomock.Any(), orgID).Return(int64(42), nil)
		fx.orgs.EXPECT().Delete(gomock.Any(), orgID).Return(nil)

		result, err := fx.svc.ExecuteHardDelete(context.Background(), service.HardDeleteInput{
			OrganizationID: orgID,
			ExecutedBy:     adminID,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), result.ItemsDeleted["audit_logs"])
	})

	t.Run("active organization cannot be hard-deleted", func(t *testing.T) {
		fx := newOffboardingFixture(ctrl)

		fx.orgs.EXPECT().
			FindByID(gomock.Any(), orgID).
			Return(&model.Organization{ID: orgID}, nil)

		_, err := fx.svc.ExecuteHardDelete(context.Background(), service.HardDeleteInput{
			OrganizationID: orgID,
			ExecutedBy:     adminID,
		})
		assert.ErrorIs(t, err, domain.ErrNotSoftDeleted)
	})
}

func TestPendingDeletions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newOffboardingFixture(ctrl)

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	fx.svc.SetClock(func() time.Time { return now })

	deletedAt := now.AddDate(0, 0, -10)
	dueSoon := now.AddDate(0, 0, 20)
	overdue := now.AddDate(0, 0, -2)

	orgA := &model.Organization{ID: uuid.New(), Name: "A", DeletedAt: &deletedAt, PermanentDeletionAt: &dueSoon}
	orgB := &model.Organization{ID: uuid.New(), Name: "B", DeletedAt: &deletedAt, PermanentDeletionAt: &overdue}

	fx.orgs.EXPECT().ListSoftDeleted(gomock.Any()).Return([]*model.Organization{orgA, orgB}, nil)
	fx.profiles.EXPECT().CountByOrganization(gomock.Any(), orgA.ID).Return(int64(12), nil)
	fx.profiles.EXPECT().CountByOrganization(gomock.Any(), orgB.ID).Return(int64(3), nil)

	pending, err := fx.svc.PendingDeletions(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, 21, pending[0].DaysRemaining)
	assert.Equal(t, int64(12), pending[0].AffectedUsers)
	assert.Equal(t, 0, pending[1].DaysRemaining, "overdue organizations report zero days remaining")
}
