// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationStatus string

const (
	OrgStatusActive      OrganizationStatus = "active"
	OrgStatusOffboarding OrganizationStatus = "offboarding"
)

type Organization struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string             `gorm:"type:text;not null" json:"name"`
	Status    OrganizationStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Offboarding state. DeletedAt is the soft-delete stamp; the row stays in
	// place until the hard-delete stage removes it.
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
	OffboardingReason   string     `gorm:"type:text" json:"offboarding_reason,omitempty"`
	OffboardingBy       *uuid.UUID `gorm:"type:uuid" json:"offboarding_by,omitempty"`
	PermanentDeletionAt *time.Time `json:"permanent_deletion_at,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}

// SoftDeleted reports whether the organization is inside its offboarding window.
func (o *Organization) SoftDeleted() bool {
	return o.DeletedAt != nil
}
