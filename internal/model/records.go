// internal/model/records.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Domain tables touched only by the hard-delete cascade. The purge order is
// child-first: enrollments, certificates, case records, then parents.

type Enrollment struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null" json:"course_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	IssuedAt       time.Time `json:"issued_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

type CaseRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Reference      string    `gorm:"type:text" json:"reference"`
	CreatedAt      time.Time `json:"created_at"`
}

func (CaseRecord) TableName() string {
	return "tribunal_cases_raw"
}
