// internal/model/subscription.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubStatusActive      SubscriptionStatus = "active"
	SubStatusTrialing    SubscriptionStatus = "trialing"
	SubStatusPastDue     SubscriptionStatus = "past_due"
	SubStatusCanceled    SubscriptionStatus = "canceled"
	SubStatusOffboarding SubscriptionStatus = "offboarding"
)

// OrganizationSubscription is the canonical entitlement source: one row per
// organization. SeatCount of Unlimited (-1) means no seat ceiling.
type OrganizationSubscription struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID     uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"organization_id"`
	Tier               Tier               `gorm:"type:text;not null;default:'free'" json:"tier"`
	Status             SubscriptionStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	SeatCount          int                `gorm:"not null;default:1" json:"seat_count"`
	SeatsUsed          int                `gorm:"not null;default:0" json:"seats_used"`
	GracePeriodEndsAt  *time.Time         `json:"grace_period_ends_at,omitempty"`
	ProviderCustomerID string             `gorm:"type:text" json:"provider_customer_id,omitempty"`
	ProviderSubID      string             `gorm:"type:text" json:"provider_sub_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (OrganizationSubscription) TableName() string {
	return "organization_subscriptions"
}

// SeatsAvailable returns remaining seats, or Unlimited when there is no ceiling.
func (s *OrganizationSubscription) SeatsAvailable() int {
	if s.SeatCount == Unlimited {
		return Unlimited
	}
	available := s.SeatCount - s.SeatsUsed
	if available < 0 {
		return 0
	}
	return available
}

// InGracePeriod reports whether the subscription currently sits inside a
// payment grace period.
func (s *OrganizationSubscription) InGracePeriod(now time.Time) bool {
	return s.GracePeriodEndsAt != nil && now.Before(*s.GracePeriodEndsAt)
}

// UserEntitlements is the derived per-request view combining subscription,
// tier catalog and internal-role override. Never persisted.
type UserEntitlements struct {
	UserID         uuid.UUID          `json:"user_id"`
	OrganizationID *uuid.UUID         `json:"organization_id,omitempty"`
	Tier           Tier               `json:"tier"`
	Status         SubscriptionStatus `json:"status"`
	SeatCount      int                `json:"seat_count"`
	SeatsUsed      int                `json:"seats_used"`
	SeatsAvailable int                `json:"seats_available"`
	HasSeat        bool               `json:"has_seat"`
	InGracePeriod  bool               `json:"in_grace_period"`
	Internal       bool               `json:"internal"`
	Features       TierFeatures       `json:"features"`
	Limits         TierDefinition     `json:"limits"`
}
