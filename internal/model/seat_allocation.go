// internal/model/seat_allocation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatActive    SeatStatus = "active"
	SeatRevoked   SeatStatus = "revoked"
	SeatSuspended SeatStatus = "suspended"
)

// SeatAllocation is one license slot on a subscription. A (subscription, user)
// pair holds at most one row; revocation keeps the row for history and a later
// re-join reactivates it in place. The unique index is the datastore's safety
// net against concurrent allocations racing past the capacity check.
type SeatAllocation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SubscriptionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_seat_sub_user,priority:1" json:"subscription_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_seat_sub_user,priority:2" json:"user_id"`
	Status         SeatStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	Role           Role       `gorm:"type:text;not null;default:'learner'" json:"role"`
	AllocatedBy    *uuid.UUID `gorm:"type:uuid" json:"allocated_by,omitempty"`
	AllocatedAt    time.Time  `json:"allocated_at"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (SeatAllocation) TableName() string {
	return "seat_allocations"
}
