// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileStatus string

const (
	ProfileActive    ProfileStatus = "active"
	ProfileSuspended ProfileStatus = "suspended"
)

// Role is the platform role attached to a profile. A small fixed set of
// internal/staff roles bypasses subscription checks entirely.
type Role string

const (
	RoleSuperAdmin        Role = "super_admin"
	RoleComplianceOfficer Role = "compliance_officer"
	RoleInvestigator      Role = "investigator"
	RoleAnalyst           Role = "analyst"
	RoleOrgAdmin          Role = "org_admin"
	RoleInstructor        Role = "instructor"
	RoleLearner           Role = "learner"
)

var internalRoles = map[Role]bool{
	RoleSuperAdmin:        true,
	RoleComplianceOfficer: true,
	RoleInvestigator:      true,
	RoleAnalyst:           true,
}

// Profile is the per-user membership record within the platform.
type Profile struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	OrganizationID *uuid.UUID    `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Email          string        `gorm:"type:citext;not null" json:"email"`
	FullName       string        `gorm:"type:text" json:"full_name"`
	Role           Role          `gorm:"type:text;not null;default:'learner'" json:"role"`
	Status         ProfileStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	SuspendedAt    *time.Time    `json:"suspended_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Identity is the resolved view of who is calling: role plus organization,
// with the internal capability decided once at resolution time rather than
// by string comparison at each call site.
type Identity struct {
	UserID         uuid.UUID
	OrganizationID *uuid.UUID
	Role           Role
	Internal       bool
}

// IdentityFor builds an Identity from a profile.
func IdentityFor(p *Profile) Identity {
	return Identity{
		UserID:         p.UserID,
		OrganizationID: p.OrganizationID,
		Role:           p.Role,
		Internal:       internalRoles[p.Role],
	}
}
