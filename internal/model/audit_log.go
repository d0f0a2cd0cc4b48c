// internal/model/audit_log.go
package model

import (
	"crypto/sha256"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Compliance classification attached to audit entries.
const (
	ComplianceStandard = "standard"
	ComplianceHigh     = "high"

	DataClassInternal  = "internal"
	DataClassSensitive = "sensitive"
)

// Retention horizons in days.
const (
	RetentionDefault    = 365
	RetentionCompliance = 7 * 365
)

// AuditLog is an append-only admin/compliance record. Each entry carries a
// hash over its content plus the previous entry's hash, making silent edits
// detectable. Entries are archived, never deleted, when their organization is
// hard-deleted (unless explicitly overridden).
type AuditLog struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID  *uuid.UUID `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Action          string     `gorm:"type:text;not null" json:"action"`
	ActorUserID     *uuid.UUID `gorm:"type:uuid" json:"actor_user_id,omitempty"`
	ResourceType    string     `gorm:"type:text" json:"resource_type,omitempty"`
	ResourceID      string     `gorm:"type:text" json:"resource_id,omitempty"`
	Details         JSONMap    `gorm:"type:jsonb" json:"details,omitempty"`
	IPAddress       string     `gorm:"type:text" json:"ip_address,omitempty"`
	Hash            string     `gorm:"type:text;not null" json:"hash"`
	PrevHash        string     `gorm:"type:text" json:"prev_hash,omitempty"`
	RetentionDays   int        `gorm:"not null;default:365" json:"retention_days"`
	ComplianceLevel string     `gorm:"type:text;not null;default:'standard'" json:"compliance_level"`
	DataClass       string     `gorm:"type:text;not null;default:'internal'" json:"data_class"`
	Archived        bool       `gorm:"not null;default:false" json:"archived"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	RetainUntil     *time.Time `json:"retain_until,omitempty"`
	Timestamp       time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// ComputeHash derives the tamper marker for the entry chained onto prev.
func (l *AuditLog) ComputeHash(prev string) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		l.OrganizationID, l.Action, l.ActorUserID, l.ResourceType, l.ResourceID, prev)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// JSONMap is a generic map stored as JSONB.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}
