// internal/service/gate.go
package service

import (
	"context"
	"fmt"

	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
)

// Action is a gated platform operation mapped to one tier limit.
type Action string

const (
	ActionCreateCourse Action = "create_course"
	ActionAddStudent   Action = "add_student"
	ActionAddOrgMember Action = "add_org_member"
)

// GateDecision is the outcome of a hard limit check. Denials carry a
// human-readable reason and a deep link into the upgrade flow.
type GateDecision struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	UpgradeURL string `json:"upgrade_url,omitempty"`
}

// GateService enforces tier limits for actions that could breach a paid-tier
// contract. Unlike the resolver's soft feature reads, the gate fails closed:
// if entitlements cannot be resolved cleanly, the action is denied.
type GateService struct {
	entitlements *EntitlementService
	baseURL      string
}

func NewGateService(entitlements *EntitlementService, baseURL string) *GateService {
	return &GateService{
		entitlements: entitlements,
		baseURL:      baseURL,
	}
}

// CanPerformAction compares current usage to the resolved tier's limit for
// the action.
func (s *GateService) CanPerformAction(ctx context.Context, userID uuid.UUID, action Action, currentUsage int) GateDecision {
	ents, err := s.entitlements.Resolve(ctx, userID)
	if err != nil || ents == nil {
		return GateDecision{
			Allowed:    false,
			Reason:     "Unable to verify subscription limits. Please try again.",
			UpgradeURL: s.upgradeURL(model.TierFree),
		}
	}

	limit, ok := limitFor(ents.Limits, action)
	if !ok {
		return GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("Unknown action %q.", action),
		}
	}

	if limit == model.Unlimited {
		return GateDecision{Allowed: true}
	}

	if currentUsage < limit {
		return GateDecision{Allowed: true}
	}

	return GateDecision{
		Allowed: false,
		Reason: fmt.Sprintf("Your %s plan allows up to %d %s. Upgrade to raise this limit.",
			tierLabel(ents.Tier), limit, actionNoun(action)),
		UpgradeURL: s.upgradeURL(ents.Tier),
	}
}

func (s *GateService) upgradeURL(current model.Tier) string {
	return fmt.Sprintf("%s/pricing?upgrade_from=%s", s.baseURL, current)
}

func limitFor(def model.TierDefinition, action Action) (int, bool) {
	switch action {
	case ActionCreateCourse:
		return def.MaxCoursesAuthored, true
	case ActionAddStudent:
		return def.MaxStudentsPerCourse, true
	case ActionAddOrgMember:
		return def.MaxOrganizationMembers, true
	default:
		return 0, false
	}
}

func actionNoun(action Action) string {
	switch action {
	case ActionCreateCourse:
		return "authored courses"
	case ActionAddStudent:
		return "students per course"
	case ActionAddOrgMember:
		return "organization members"
	default:
		return string(action)
	}
}

func tierLabel(tier model.Tier) string {
	switch tier {
	case model.TierFree:
		return "Free"
	case model.TierProfessional:
		return "Professional"
	case model.TierBusiness:
		return "Business"
	case model.TierBusinessPlus:
		return "Business Plus"
	case model.TierEnterprise:
		return "Enterprise"
	default:
		return string(tier)
	}
}
