package service_test

import (
	"context"
	"testing"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/mocks"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type migrationFixture struct {
	legacy   *mocks.MockLegacyRepositoryIface
	profiles *mocks.MockProfileRepositoryIface
	subs     *mocks.MockSubscriptionRepositoryIface
	seats    *mocks.MockSeatAllocationRepositoryIface
	svc      *service.MigrationService
}

func newMigrationFixture(ctrl *gomock.Controller) *migrationFixture {
	fx := &migrationFixture{
		legacy:   mocks.NewMockLegacyRepositoryIface(ctrl),
		profiles: mocks.NewMockProfileRepositoryIface(ctrl),
		subs:     mocks.NewMockSubscriptionRepositoryIface(ctrl),
		seats:    mocks.NewMockSeatAllocationRepositoryIface(ctrl),
	}
	fx.svc = service.NewMigrationService(fx.legacy, fx.profiles, fx.subs, fx.seats, newTestLogger())
	return fx
}

func TestMigrationFirstRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newMigrationFixture(ctrl)

	userID := uuid.New()
	orgA := uuid.New()
	orgB := uuid.New()

	fx.legacy.EXPECT().
		ListUserSubscriptions(gomock.Any()).
		Return([]*model.LegacyUserSubscription{
			{ID: uuid.New(), UserID: userID, TierName: "pro"},
		}, nil)
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&model.Profile{UserID: userID, OrganizationID: &orgA, Role: model.RoleInstructor}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgA).
		Return(nil, domain.ErrSubscriptionNotFound)
	fx.subs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *model.OrganizationSubscription) error {
			assert.Equal(t, orgA, sub.OrganizationID)
			assert.Equal(t, model.TierProfessional, sub.Tier)
			assert.Equal(t, 25, sub.SeatCount)
			assert.Equal(t, 1, sub.SeatsUsed)
			return nil
		})
	fx.seats.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, seat *model.SeatAllocation) error {
			assert.Equal(t, userID, seat.UserID)
			assert.Equal(t, model.SeatActive, seat.Status)
			return nil
		})

	fx.legacy.EXPECT().
		ListOrganizationTiers(gomock.Any()).
		Return([]*model.LegacyOrganizationTier{
			{OrganizationID: orgB, TierName: "business", MaxUsers: 50},
		}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgB).
		Return(nil, domain.ErrSubscriptionNotFound)
	fx.subs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *model.OrganizationSubscription) error {
			assert.Equal(t, orgB, sub.OrganizationID)
			assert.Equal(t, model.TierBusiness, sub.Tier)
			assert.Equal(t, 50, sub.SeatCount)
			return nil
		})

	summary, err := fx.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Phase1Migrated)
	assert.Equal(t, 0, summary.Phase1Skipped)
	assert.Equal(t, 1, summary.Phase2Migrated)
	assert.Equal(t, 0, summary.Phase2Skipped)
	assert.Equal(t, 1, summary.SeatsAllocated)
	assert.Empty(t, summary.Errors)
}

func TestMigrationReRunIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newMigrationFixture(ctrl)

	userID := uuid.New()
	orgA := uuid.New()
	orgB := uuid.New()

	// Canonical rows already exist from the first run, so the second run
	// writes nothing.
	fx.legacy.EXPECT().
		ListUserSubscriptions(gomock.Any()).
		Return([]*model.LegacyUserSubscription{
			{ID: uuid.New(), UserID: userID, TierName: "pro"},
		}, nil)
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&model.Profile{UserID: userID, OrganizationID: &orgA}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgA).
		Return(&model.OrganizationSubscription{ID: uuid.New(), OrganizationID: orgA}, nil)

	fx.legacy.EXPECT().
		ListOrganizationTiers(gomock.Any()).
		Return([]*model.LegacyOrganizationTier{
			{OrganizationID: orgB, TierName: "business", MaxUsers: 50},
		}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgB).
		Return(&model.OrganizationSubscription{ID: uuid.New(), OrganizationID: orgB}, nil)

	summary, err := fx.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Phase1Migrated)
	assert.Equal(t, 1, summary.Phase1Skipped)
	assert.Equal(t, 0, summary.Phase2Migrated)
	assert.Equal(t, 1, summary.Phase2Skipped)
	assert.Equal(t, 0, summary.SeatsAllocated)
}

func TestMigrationDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newMigrationFixture(ctrl)
	fx.svc.SetDryRun(true)

	userID := uuid.New()
	orgA := uuid.New()

	// No Create expectations: a dry run must not write.
	fx.legacy.EXPECT().
		ListUserSubscriptions(gomock.Any()).
		Return([]*model.LegacyUserSubscription{
			{ID: uuid.New(), UserID: userID, TierName: "enterprise"},
		}, nil)
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&model.Profile{UserID: userID, OrganizationID: &orgA}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgA).
		Return(nil, domain.ErrSubscriptionNotFound)
	fx.legacy.EXPECT().
		ListOrganizationTiers(gomock.Any()).
		Return(nil, nil)

	summary, err := fx.svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Phase1Migrated)
}

func TestMigrationDryRunMatchesRealRunCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newMigrationFixture(ctrl)
	fx.svc.SetDryRun(true)

	userA := uuid.New()
	userB := uuid.New()
	orgA := uuid.New()

	// Two legacy user rows in the same organization, plus a legacy org-tier
	// row for it. A real run would create one subscription and skip the rest;
	// the dry run must report the same counts even though it writes nothing.
	fx.legacy.EXPECT().
		ListUserSubscriptions(gomock.Any()).
		Return([]*model.LegacyUserSubscription{
			{ID: uuid.New(), UserID: userA, TierName: "pro"},
			{ID: uuid.New(), UserID: userB, TierName: "pro"},
		}, nil)
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), userA).
		Return(&model.Profile{UserID: userA, OrganizationID: &orgA}, nil)
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), userB).
		Return(&model.Profile{UserID: userB, OrganizationID: &orgA}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgA).
		Return(nil, domain.ErrSubscriptionNotFound).
		Times(1)

	fx.legacy.EXPECT().
		ListOrganizationTiers(gomock.Any()).
		Return([]*model.LegacyOrganizationTier{
			{OrganizationID: orgA, TierName: "pro", MaxUsers: 25},
		}, nil)

	summary, err := fx.svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Phase1Migrated)
	assert.Equal(t, 1, summary.Phase1Skipped)
	assert.Equal(t, 1, summary.SeatsAllocated)
	assert.Equal(t, 0, summary.Phase2Migrated)
	assert.Equal(t, 1, summary.Phase2Skipped)
}

func TestMigrationRowErrorsDoNotAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newMigrationFixture(ctrl)

	orphanID := uuid.New()
	userID := uuid.New()
	orgA := uuid.New()

	fx.legacy.EXPECT().
		ListUserSubscriptions(gomock.Any()).
		Return([]*model.LegacyUserSubscription{
			{ID: uuid.New(), UserID: orphanID, TierName: "pro"},
			{ID: uuid.New(), UserID: userID, TierName: "pro"},
		}, nil)

	// First row: the user has no organization to attach a subscription to.
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), orphanID).
		Return(&model.Profile{UserID: orphanID}, nil)

	// Second row migrates normally.
	fx.profiles.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&model.Profile{UserID: userID, OrganizationID: &orgA, Role: model.RoleLearner}, nil)
	fx.subs.EXPECT().
		FindByOrganization(gomock.Any(), orgA).
		Return(nil, domain.ErrSubscriptionNotFound)
	fx.subs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	fx.seats.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	fx.legacy.EXPECT().ListOrganizationTiers(gomock.Any()).Return(nil, nil)

	summary, err := fx.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Phase1Migrated)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "legacy_user_subscription", summary.Errors[0].EntityType)
}
