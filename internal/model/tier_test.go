package model_test

import (
	"testing"
	"time"

	"github.com/equitylearn/entitlements/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	t.Run("known tiers resolve their catalog entry", func(t *testing.T) {
		def := model.TierFor(model.TierProfessional)
		assert.Equal(t, model.TierProfessional, def.Name)
		assert.Equal(t, 25, def.MaxCoursesAuthored)
		assert.True(t, def.Features.AIAssistant)
		assert.False(t, def.Features.SSO)
	})

	t.Run("enterprise has no limits", func(t *testing.T) {
		def := model.TierFor(model.TierEnterprise)
		assert.Equal(t, model.Unlimited, def.MaxCoursesAuthored)
		assert.Equal(t, model.Unlimited, def.MaxStudentsPerCourse)
		assert.Equal(t, model.Unlimited, def.MaxOrganizationMembers)
		assert.True(t, def.Features.SSO)
	})

	t.Run("unknown tier defaults to free", func(t *testing.T) {
		def := model.TierFor(model.Tier("platinum"))
		assert.Equal(t, model.TierFree, def.Name)
	})
}

func TestParseTier(t *testing.T) {
	cases := []struct {
		in   string
		want model.Tier
	}{
		{"professional", model.TierProfessional},
		{"PROFESSIONAL", model.TierProfessional},
		{"pro", model.TierProfessional},
		{"Business Plus", model.TierBusinessPlus},
		{"business-plus", model.TierBusinessPlus},
		{"business+", model.TierBusinessPlus},
		{"  enterprise  ", model.TierEnterprise},
		{"free", model.TierFree},
		{"", model.TierFree},
		{"gold", model.TierFree},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, model.ParseTier(tc.in), "input %q", tc.in)
	}
}

func TestSeatsAvailable(t *testing.T) {
	cases := []struct {
		name      string
		seatCount int
		seatsUsed int
		want      int
	}{
		{"has capacity", 10, 4, 6},
		{"full", 10, 10, 0},
		{"overcommitted clamps to zero", 10, 12, 0},
		{"unlimited", model.Unlimited, 500, model.Unlimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &model.OrganizationSubscription{SeatCount: tc.seatCount, SeatsUsed: tc.seatsUsed}
			assert.Equal(t, tc.want, sub.SeatsAvailable())
		})
	}
}

func TestInGracePeriod(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, (&model.OrganizationSubscription{}).InGracePeriod(now))
	assert.True(t, (&model.OrganizationSubscription{GracePeriodEndsAt: &future}).InGracePeriod(now))
	assert.False(t, (&model.OrganizationSubscription{GracePeriodEndsAt: &past}).InGracePeriod(now))
}

func TestIdentityFor(t *testing.T) {
	internal := []model.Role{
		model.RoleSuperAdmin,
		model.RoleComplianceOfficer,
		model.RoleInvestigator,
		model.RoleAnalyst,
	}
	external := []model.Role{
		model.RoleOrgAdmin,
		model.RoleInstructor,
		model.RoleLearner,
	}

	for _, role := range internal {
		identity := model.IdentityFor(&model.Profile{Role: role})
		assert.True(t, identity.Internal, "role %s must be internal", role)
	}
	for _, role := range external {
		identity := model.IdentityFor(&model.Profile{Role: role})
		assert.False(t, identity.Internal, "role %s must not be internal", role)
	}
}

func TestAuditLogHashChain(t *testing.T) {
	first := &model.AuditLog{Action: "organization.offboarding_initiated", ResourceType: "organization"}
	first.Hash = first.ComputeHash("")

	second := &model.AuditLog{Action: "organization.hard_deleted", ResourceType: "organization"}
	second.PrevHash = first.Hash
	second.Hash = second.ComputeHash(first.Hash)

	// Recomputing over unchanged content reproduces the chain.
	assert.Equal(t, first.Hash, first.ComputeHash(""))
	assert.Equal(t, second.Hash, second.ComputeHash(first.Hash))

	// Any content edit breaks the chain.
	tampered := *second
	tampered.Action = "organization.restored"
	assert.NotEqual(t, second.Hash, tampered.ComputeHash(first.Hash))
}
