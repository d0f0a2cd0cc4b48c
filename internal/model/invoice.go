// internal/model/invoice.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionInvoice is an append-only financial record mirroring one
// billing-provider invoice event. There is no update or delete path.
type SubscriptionInvoice struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SubscriptionID    uuid.UUID `gorm:"type:uuid;not null;index" json:"subscription_id"`
	ProviderInvoiceID string    `gorm:"type:text;uniqueIndex;not null" json:"provider_invoice_id"`
	AmountCents       int64     `gorm:"not null" json:"amount_cents"`
	Currency          string    `gorm:"type:text;not null;default:'usd'" json:"currency"`
	Status            string    `gorm:"type:text;not null" json:"status"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	Payload           JSONMap   `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (SubscriptionInvoice) TableName() string {
	return "subscription_invoices"
}
