// internal/service/seat.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/equitylearn/entitlements/internal/audit"
	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SeatService manages per-user license slots on an organization's
// subscription and the append-only invoice trail.
//
// Capacity enforcement is the caller's responsibility: AllocateSeat does not
// check the seat ceiling, so admin/override flows can allocate past it.
// Invite flows call EnforceSeats (or CanAddUsers) first. The unique index on
// (subscription_id, user_id) is the datastore-level safety net when two
// allocations race past the check.
type SeatService struct {
	subs         repository.SubscriptionRepositoryIface
	seats        repository.SeatAllocationRepositoryIface
	invoices     repository.InvoiceRepositoryIface
	entitlements *EntitlementService
	auditLogger  audit.Logger
	validate     *validator.Validate
	log          *slog.Logger
}

func NewSeatService(
	subs repository.SubscriptionRepositoryIface,
	seats repository.SeatAllocationRepositoryIface,
	invoices repository.InvoiceRepositoryIface,
	entitlements *EntitlementService,
	auditLogger audit.Logger,
	log *slog.Logger,
) *SeatService {
	return &SeatService{
		subs:         subs,
		seats:        seats,
		invoices:     invoices,
		entitlements: entitlements,
		auditLogger:  auditLogger,
		validate:     validator.New(),
		log:          log,
	}
}

// CanAddUsers reports whether the organization's subscription has at least
// count seats free. Uses a live count of active allocations, not the cached
// seats_used column.
func (s *SeatService) CanAddUsers(ctx context.Context, orgID uuid.UUID, count int) (bool, error) {
	sub, err := s.subs.FindByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			// No subscription record: the organization runs on implicit free
			// tier with no seat enforcement.
			return true, nil
		}
		return false, err
	}

	if sub.SeatCount == model.Unlimited {
		return true, nil
	}

	active, err := s.seats.CountActive(ctx, sub.ID)
	if err != nil {
		return false, err
	}
	return int(active)+count <= sub.SeatCount, nil
}

type AllocateSeatInput struct {
	SubscriptionID uuid.UUID  `validate:"required"`
	UserID         uuid.UUID  `validate:"required"`
	AllocatedBy    *uuid.UUID `validate:"-"`
	Role           model.Role `validate:"required"`
}

// AllocateSeat gives the user a seat on the subscription. Idempotent:
// an existing active allocation is returned unchanged, a revoked or
// suspended one is reactivated in place, and only a genuinely new
// activation bumps the seats_used counter.
func (s *SeatService) AllocateSeat(ctx context.Context, input AllocateSeatInput) (*model.SeatAllocation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	seat, err := s.seats.FindBySubscriptionAndUser(ctx, input.SubscriptionID, input.UserID)
	switch {
	case err == nil:
		if seat.Status == model.SeatActive {
			return seat, nil
		}
		// Reactivate the historical row rather than inserting a duplicate.
		seat.Status = model.SeatActive
		seat.RevokedAt = nil
		seat.AllocatedAt = time.Now().UTC()
		seat.AllocatedBy = input.AllocatedBy
		seat.Role = input.Role
		if err := s.seats.Update(ctx, seat); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrSeatNotFound):
		seat = &model.SeatAllocation{
			SubscriptionID: input.SubscriptionID,
			UserID:         input.UserID,
			Status:         model.SeatActive,
			Role:           input.Role,
			AllocatedBy:    input.AllocatedBy,
			AllocatedAt:    time.Now().UTC(),
		}
		if err := s.seats.Create(ctx, seat); err != nil {
			if errors.Is(err, domain.ErrSeatConflict) {
				// Another request created the row between our read and write.
				// Converge on the winner's row.
				existing, findErr := s.seats.FindBySubscriptionAndUser(ctx, input.SubscriptionID, input.UserID)
				if findErr != nil {
					return nil, err
				}
				return existing, nil
			}
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.subs.AdjustSeatsUsed(ctx, input.SubscriptionID, 1); err != nil {
		s.log.Warn("failed to adjust seats_used after allocation",
			"subscription_id", input.SubscriptionID, "error", err)
	}
	s.entitlements.Invalidate(ctx, input.UserID)

	s.auditSeatChange(ctx, seat, "seat.allocated", input.AllocatedBy)
	return seat, nil
}

// RevokeSeat releases the user's seat, keeping the allocation row for
// history.
func (s *SeatService) RevokeSeat(ctx context.Context, subscriptionID, userID uuid.UUID) error {
	seat, err := s.seats.FindBySubscriptionAndUser(ctx, subscriptionID, userID)
	if err != nil {
		return err
	}
	if seat.Status == model.SeatRevoked {
		return nil
	}

	now := time.Now().UTC()
	seat.Status = model.SeatRevoked
	seat.RevokedAt = &now
	if err := s.seats.Update(ctx, seat); err != nil {
		return err
	}

	if err := s.subs.AdjustSeatsUsed(ctx, subscriptionID, -1); err != nil {
		s.log.Warn("failed to adjust seats_used after revocation",
			"subscription_id", subscriptionID, "error", err)
	}
	s.entitlements.Invalidate(ctx, userID)

	s.auditSeatChange(ctx, seat, "seat.revoked", nil)
	return nil
}

// RevokeSeatForOrganization resolves the organization's active subscription
// and revokes the user's seat on it.
func (s *SeatService) RevokeSeatForOrganization(ctx context.Context, orgID, userID uuid.UUID) error {
	sub, err := s.subs.FindByOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	return s.RevokeSeat(ctx, sub.ID, userID)
}

// SeatDecision is the outcome of a composite invite-flow capacity check.
type SeatDecision struct {
	Allowed      bool                            `json:"allowed"`
	Reason       string                          `json:"reason,omitempty"`
	Subscription *model.OrganizationSubscription `json:"subscription,omitempty"`
}

// EnforceSeats is the composite check used by invite flows: grace-period
// state first, then live seat availability.
func (s *SeatService) EnforceSeats(ctx context.Context, orgID uuid.UUID, requestedCount int) (*SeatDecision, error) {
	sub, err := s.subs.FindByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return &SeatDecision{Allowed: true}, nil
		}
		return nil, err
	}

	now := time.Now().UTC()
	if sub.InGracePeriod(now) {
		return &SeatDecision{
			Allowed: false,
			Reason: fmt.Sprintf("Subscription is in a payment grace period until %s. Seat changes are locked.",
				sub.GracePeriodEndsAt.Format("January 2, 2006")),
			Subscription: sub,
		}, nil
	}

	if sub.SeatCount == model.Unlimited {
		return &SeatDecision{Allowed: true, Subscription: sub}, nil
	}

	active, err := s.seats.CountActive(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	available := sub.SeatCount - int(active)
	if available < 0 {
		available = 0
	}
	if available < requestedCount {
		return &SeatDecision{
			Allowed: false,
			Reason: fmt.Sprintf("No available seats. %d of %d seats available.",
				available, sub.SeatCount),
			Subscription: sub,
		}, nil
	}

	return &SeatDecision{Allowed: true, Subscription: sub}, nil
}

type RecordInvoiceInput struct {
	SubscriptionID    uuid.UUID `validate:"required"`
	ProviderInvoiceID string    `validate:"required"`
	AmountCents       int64     `validate:"gte=0"`
	Currency          string    `validate:"required,len=3"`
	Status            string    `validate:"required"`
	PeriodStart       time.Time `validate:"required"`
	PeriodEnd         time.Time `validate:"required"`
	Payload           map[string]interface{}
}

// RecordInvoice appends one immutable invoice row per billing-provider
// event. Re-delivered webhooks are absorbed by the provider-invoice-ID
// uniqueness and reported as success.
func (s *SeatService) RecordInvoice(ctx context.Context, input RecordInvoiceInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	invoice := &model.SubscriptionInvoice{
		SubscriptionID:    input.SubscriptionID,
		ProviderInvoiceID: input.ProviderInvoiceID,
		AmountCents:       input.AmountCents,
		Currency:          input.Currency,
		Status:            input.Status,
		PeriodStart:       input.PeriodStart,
		PeriodEnd:         input.PeriodEnd,
		Payload:           model.JSONMap(input.Payload),
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		if errors.Is(err, domain.ErrDuplicateInvoice) {
			s.log.Info("duplicate invoice event ignored",
				"provider_invoice_id", input.ProviderInvoiceID)
			return nil
		}
		return err
	}
	return nil
}

func (s *SeatService) auditSeatChange(ctx context.Context, seat *model.SeatAllocation, action string, actor *uuid.UUID) {
	sub, err := s.subs.FindByID(ctx, seat.SubscriptionID)
	var orgID *uuid.UUID
	if err == nil {
		orgID = &sub.OrganizationID
	}
	if err := s.auditLogger.LogAdminAction(ctx, audit.Entry{
		OrganizationID: orgID,
		Action:         action,
		ActorUserID:    actor,
		ResourceType:   "seat_allocation",
		ResourceID:     seat.ID.String(),
		Details: map[string]interface{}{
			"subscription_id": seat.SubscriptionID.String(),
			"user_id":         seat.UserID.String(),
			"status":          string(seat.Status),
		},
	}); err != nil {
		s.log.Warn("audit write failed", "action", action, "error", err)
	}
}
