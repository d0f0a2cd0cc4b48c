// internal/handler/webhook.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/google/uuid"
)

// WebhookHandler receives billing-provider invoice events and appends them
// to the immutable invoice trail.
type WebhookHandler struct {
	seats *service.SeatService
}

func NewWebhookHandler(seats *service.SeatService) *WebhookHandler {
	return &WebhookHandler{seats: seats}
}

type invoiceEvent struct {
	SubscriptionID    string                 `json:"subscription_id"`
	ProviderInvoiceID string                 `json:"provider_invoice_id"`
	AmountCents       int64                  `json:"amount_cents"`
	Currency          string                 `json:"currency"`
	Status            string                 `json:"status"`
	PeriodStart       time.Time              `json:"period_start"`
	PeriodEnd         time.Time              `json:"period_end"`
	Payload           map[string]interface{} `json:"payload"`
}

// Invoice records one invoice event. Re-deliveries are acknowledged without
// creating duplicates.
func (h *WebhookHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	var event invoiceEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	subID, err := uuid.Parse(event.SubscriptionID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription_id")
		return
	}

	if err := h.seats.RecordInvoice(r.Context(), service.RecordInvoiceInput{
		SubscriptionID:    subID,
		ProviderInvoiceID: event.ProviderInvoiceID,
		AmountCents:       event.AmountCents,
		Currency:          event.Currency,
		Status:            event.Status,
		PeriodStart:       event.PeriodStart,
		PeriodEnd:         event.PeriodEnd,
		Payload:           event.Payload,
	}); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to record invoice")
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
