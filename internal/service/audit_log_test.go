package service_test

import (
	"context"
	"testing"

	"github.com/equitylearn/entitlements/internal/audit"
	"github.com/equitylearn/entitlements/internal/mocks"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLogAdminActionChainsHashes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditLogRepositoryIface(ctrl)
	svc := service.NewAuditLogService(repo)

	orgID := uuid.New()
	actorID := uuid.New()
	prevHash := "deadbeef"

	var written *model.AuditLog
	repo.EXPECT().
		LastHash(gomock.Any(), &orgID).
		Return(prevHash, nil)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *model.AuditLog) error {
			written = entry
			return nil
		})

	err := svc.LogAdminAction(context.Background(), audit.Entry{
		OrganizationID: &orgID,
		Action:         "organization.offboarding_initiated",
		ActorUserID:    &actorID,
		ResourceType:   "organization",
		ResourceID:     orgID.String(),
		Compliance:     true,
	})

	require.NoError(t, err)
	require.NotNil(t, written)
	assert.Equal(t, prevHash, written.PrevHash)
	assert.Equal(t, written.ComputeHash(prevHash), written.Hash)
	assert.Equal(t, model.RetentionCompliance, written.RetentionDays)
	assert.Equal(t, model.ComplianceHigh, written.ComplianceLevel)
}

func TestLogAdminActionStartsNewChainOnLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditLogRepositoryIface(ctrl)
	svc := service.NewAuditLogService(repo)

	orgID := uuid.New()

	repo.EXPECT().
		LastHash(gomock.Any(), &orgID).
		Return("", assert.AnError)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *model.AuditLog) error {
			assert.Empty(t, entry.PrevHash)
			assert.Equal(t, entry.ComputeHash(""), entry.Hash)
			assert.Equal(t, model.RetentionDefault, entry.RetentionDays)
			return nil
		})

	err := svc.LogAdminAction(context.Background(), audit.Entry{
		OrganizationID: &orgID,
		Action:         "seat.allocated",
		ResourceType:   "seat_allocation",
	})
	require.NoError(t, err)
}
