// internal/model/tier.go
package model

import "strings"

type Tier string

const (
	TierFree         Tier = "free"
	TierProfessional Tier = "professional"
	TierBusiness     Tier = "business"
	TierBusinessPlus Tier = "business_plus"
	TierEnterprise   Tier = "enterprise"
)

// Unlimited is the sentinel for a limit or seat count with no ceiling.
const Unlimited = -1

// TierFeatures is the flag set attached to a tier. Flattened onto
// UserEntitlements during resolution.
type TierFeatures struct {
	AIAssistant       bool `json:"ai_assistant"`
	AICoach           bool `json:"ai_coach"`
	AdvancedAnalytics bool `json:"advanced_analytics"`
	CustomBranding    bool `json:"custom_branding"`
	SSO               bool `json:"sso"`
	PrioritySupport   bool `json:"priority_support"`
	Export            bool `json:"export"`
	Integrations      bool `json:"integrations"`
}

// TierDefinition describes the limits and features of one subscription tier.
// The catalog is static; it is never persisted or mutated at runtime.
type TierDefinition struct {
	Name                   Tier         `json:"name"`
	MaxCoursesAuthored     int          `json:"max_courses_authored"`
	MaxStudentsPerCourse   int          `json:"max_students_per_course"`
	MaxOrganizationMembers int          `json:"max_organization_members"`
	Features               TierFeatures `json:"features"`
}

var tierCatalog = map[Tier]TierDefinition{
	TierFree: {
		Name:                   TierFree,
		MaxCoursesAuthored:     3,
		MaxStudentsPerCourse:   25,
		MaxOrganizationMembers: 5,
	},
	TierProfessional: {
		Name:                   TierProfessional,
		MaxCoursesAuthored:     25,
		MaxStudentsPerCourse:   100,
		MaxOrganizationMembers: 25,
		Features: TierFeatures{
			AIAssistant: true,
			Export:      true,
		},
	},
	TierBusiness: {
		Name:                   TierBusiness,
		MaxCoursesAuthored:     100,
		MaxStudentsPerCourse:   500,
		MaxOrganizationMembers: 100,
		Features: TierFeatures{
			AIAssistant:       true,
			AICoach:           true,
			AdvancedAnalytics: true,
			Export:            true,
		},
	},
	TierBusinessPlus: {
		Name:                   TierBusinessPlus,
		MaxCoursesAuthored:     Unlimited,
		MaxStudentsPerCourse:   1000,
		MaxOrganizationMembers: 500,
		Features: TierFeatures{
			AIAssistant:       true,
			AICoach:           true,
			AdvancedAnalytics: true,
			CustomBranding:    true,
			Export:            true,
			Integrations:      true,
		},
	},
	TierEnterprise: {
		Name:                   TierEnterprise,
		MaxCoursesAuthored:     Unlimited,
		MaxStudentsPerCourse:   Unlimited,
		MaxOrganizationMembers: Unlimited,
		Features: TierFeatures{
			AIAssistant:       true,
			AICoach:           true,
			AdvancedAnalytics: true,
			CustomBranding:    true,
			SSO:               true,
			PrioritySupport:   true,
			Export:            true,
			Integrations:      true,
		},
	},
}

// TierFor returns the catalog entry for a tier, defaulting to the free tier
// for unknown names.
func TierFor(tier Tier) TierDefinition {
	if def, ok := tierCatalog[tier]; ok {
		return def
	}
	return tierCatalog[TierFree]
}

// ParseTier normalizes a tier string from an external or legacy source.
// Unknown values map to the free tier.
func ParseTier(s string) Tier {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch Tier(normalized) {
	case TierFree, TierProfessional, TierBusiness, TierBusinessPlus, TierEnterprise:
		return Tier(normalized)
	case "pro":
		return TierProfessional
	case "businessplus", "business+":
		return TierBusinessPlus
	default:
		return TierFree
	}
}
