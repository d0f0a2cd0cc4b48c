// internal/repository/invoice.go
package repository

import (
	"context"
	"fmt"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepositoryIface interface {
	Create(ctx context.Context, invoice *model.SubscriptionInvoice) error
	FindBySubscription(ctx context.Context, subID uuid.UUID, limit, offset int) ([]*model.SubscriptionInvoice, error)
}

// InvoiceRepository is append-only. Invoices are financial records; there is
// deliberately no update or delete method.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.SubscriptionInvoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("recording invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindBySubscription(ctx context.Context, subID uuid.UUID, limit, offset int) ([]*model.SubscriptionInvoice, error) {
	var invoices []*model.SubscriptionInvoice
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}
