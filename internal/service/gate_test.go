package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/equitylearn/entitlements/internal/cache"
	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/mocks"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testBaseURL = "https://app.equitylearn.test"

func newGateFixture(ctrl *gomock.Controller) (*mocks.MockProfileRepositoryIface, *mocks.MockSubscriptionRepositoryIface, *mocks.MockSeatAllocationRepositoryIface, *service.GateService) {
	profiles := mocks.NewMockProfileRepositoryIface(ctrl)
	subs := mocks.NewMockSubscriptionRepositoryIface(ctrl)
	seats := mocks.NewMockSeatAllocationRepositoryIface(ctrl)
	ents := newEntitlementService(profiles, subs, seats, cache.NoOp{})
	return profiles, subs, seats, service.NewGateService(ents, testBaseURL)
}

func expectPaidMember(
	profiles *mocks.MockProfileRepositoryIface,
	subs *mocks.MockSubscriptionRepositoryIface,
	seats *mocks.MockSeatAllocationRepositoryIface,
	userID, orgID, subID uuid.UUID,
	tier model.Tier,
) {
	profiles.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&model.Profile{UserID: userID, OrganizationID: &orgID, Role: model.RoleInstructor}, nil)
	subs.EXPECT().
		FindByOrganization(gomock.Any(), orgID).
		Return(&model.OrganizationSubscription{
			ID:             subID,
			OrganizationID: orgID,
			Tier:           tier,
			Status:         model.SubStatusActive,
			SeatCount:      25,
			SeatsUsed:      10,
		}, nil)
	seats.EXPECT().
		FindBySubscriptionAndUser(gomock.Any(), subID, userID).
		Return(&model.SeatAllocation{SubscriptionID: subID, UserID: userID, Status: model.SeatActive}, nil)
}

func TestGateBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()
	subID := uuid.New()

	// Professional allows 25 authored courses.
	t.Run("one below the limit is allowed", func(t *testing.T) {
		profiles, subs, seats, gate := newGateFixture(ctrl)
		expectPaidMember(profiles, subs, seats, userID, orgID, subID, model.TierProfessional)

		decision := gate.CanPerformAction(context.Background(), userID, service.ActionCreateCourse, 24)
		assert.True(t, decision.Allowed)
		assert.Empty(t, decision.Reason)
	})

	t.Run("at the limit is denied with tier and limit named", func(t *testing.T) {
		profiles, subs, seats, gate := newGateFixture(ctrl)
		expectPaidMember(profiles, subs, seats, userID, orgID, subID, model.TierProfessional)

		decision := gate.CanPerformAction(context.Background(), userID, service.ActionCreateCourse, 25)
		assert.False(t, decision.Allowed)
		assert.Contains(t, decision.Reason, "Professional")
		assert.Contains(t, decision.Reason, "25")
		assert.Equal(t, fmt.Sprintf("%s/pricing?upgrade_from=professional", testBaseURL), decision.UpgradeURL)
	})

	t.Run("unlimited limit always allows", func(t *testing.T) {
		profiles, subs, seats, gate := newGateFixture(ctrl)
		expectPaidMember(profiles, subs, seats, userID, orgID, subID, model.TierBusinessPlus)

		decision := gate.CanPerformAction(context.Background(), userID, service.ActionCreateCourse, 1_000_000)
		assert.True(t, decision.Allowed)
	})
}

func TestGateInternalRoleUnlimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()

	profiles, _, _, gate := newGateFixture(ctrl)
	profiles.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&model.Profile{UserID: userID, OrganizationID: &orgID, Role: model.RoleComplianceOfficer}, nil).
		Times(3)

	for _, action := range []service.Action{
		service.ActionCreateCourse,
		service.ActionAddStudent,
		service.ActionAddOrgMember,
	} {
		decision := gate.CanPerformAction(context.Background(), userID, action, 1_000_000)
		assert.True(t, decision.Allowed, "action %s should bypass limits for internal roles", action)
	}
}

func TestGateFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()

	t.Run("profile lookup failure denies", func(t *testing.T) {
		profiles, _, _, gate := newGateFixture(ctrl)
		profiles.EXPECT().
			FindByUserID(gomock.Any(), userID).
			Return(nil, errors.New("connection refused"))

		decision := gate.CanPerformAction(context.Background(), userID, service.ActionCreateCourse, 0)
		assert.False(t, decision.Allowed)
		assert.Equal(t, "Unable to verify subscription limits. Please try again.", decision.Reason)
	})

	t.Run("subscription lookup failure denies", func(t *testing.T) {
		profiles, subs, _, gate := newGateFixture(ctrl)
		profiles.EXPECT().
			FindByUserID(gomock.Any(), userID).
			Return(&model.Profile{UserID: userID, OrganizationID: &orgID, Role: model.RoleLearner}, nil)
		subs.EXPECT().
			FindByOrganization(gomock.Any(), orgID).
			Return(nil, errors.New("connection refused"))

		decision := gate.CanPerformAction(context.Background(), userID, service.ActionAddOrgMember, 0)
		assert.False(t, decision.Allowed)
	})

	t.Run("unknown action denies", func(t *testing.T) {
		profiles, _, _, gate := newGateFixture(ctrl)
		profiles.EXPECT().
			FindByUserID(gomock.Any(), userID).
			Return(nil, domain.ErrProfileNotFound)

		decision := gate.CanPerformAction(context.Background(), userID, service.Action("launch_rocket"), 0)
		require.False(t, decision.Allowed)
		assert.Contains(t, decision.Reason, "launch_rocket")
	})
}
