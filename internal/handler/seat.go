// internal/handler/seat.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/middleware"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SeatHandler exposes seat allocation, revocation and the composite
// invite-flow capacity check.
type SeatHandler struct {
	seats *service.SeatService
}

func NewSeatHandler(seats *service.SeatService) *SeatHandler {
	return &SeatHandler{seats: seats}
}

type allocateSeatRequest struct {
	SubscriptionID string `json:"subscription_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
}

// Allocate grants a seat. Capacity is not checked here; invite flows call
// Enforce first, admin flows may allocate past the ceiling deliberately.
func (h *SeatHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req allocateSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subID, err := uuid.Parse(req.SubscriptionID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription_id")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user_id")
		return
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleLearner
	}

	seat, err := h.seats.AllocateSeat(r.Context(), service.AllocateSeatInput{
		SubscriptionID: subID,
		UserID:         userID,
		AllocatedBy:    &actor,
		Role:           role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to allocate seat")
		return
	}

	respondWithJSON(w, http.StatusOK, seat)
}

// Revoke releases a user's seat on the organization's active subscription,
// keeping the allocation history.
func (h *SeatHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.seats.RevokeSeatForOrganization(r.Context(), orgID, userID); err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			respondWithError(w, http.StatusNotFound, "No active subscription for organization")
			return
		}
		if errors.Is(err, domain.ErrSeatNotFound) {
			respondWithError(w, http.StatusNotFound, "Seat allocation not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to revoke seat")
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type enforceSeatsRequest struct {
	RequestedCount int `json:"requested_count"`
}

// Enforce runs the composite capacity check for an organization.
func (h *SeatHandler) Enforce(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req enforceSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RequestedCount <= 0 {
		req.RequestedCount = 1
	}

	decision, err := h.seats.EnforceSeats(r.Context(), orgID, req.RequestedCount)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to check seats")
		return
	}

	respondWithJSON(w, http.StatusOK, decision)
}
