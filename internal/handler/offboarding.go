// internal/handler/offboarding.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/middleware"
	"github.com/equitylearn/entitlements/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OffboardingHandler exposes the staged tenant-removal workflow to admin
// tooling. Every route requires an internal identity.
type OffboardingHandler struct {
	offboarding  *service.OffboardingService
	entitlements *service.EntitlementService
}

func NewOffboardingHandler(offboarding *service.OffboardingService, entitlements *service.EntitlementService) *OffboardingHandler {
	return &OffboardingHandler{
		offboarding:  offboarding,
		entitlements: entitlements,
	}
}

// requireInternal resolves the caller's identity and rejects non-staff.
func (h *OffboardingHandler) requireInternal(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	identity, err := h.entitlements.ResolveIdentity(r.Context(), userID)
	if err != nil || !identity.Internal {
		respondWithError(w, http.StatusForbidden, "Internal role required")
		return uuid.Nil, false
	}
	return userID, true
}

type initiateRequest struct {
	Reason            string `json:"reason"`
	GracePeriodDays   int    `json:"grace_period_days"`
	PreserveAuditLogs *bool  `json:"preserve_audit_logs"`
}

func (h *OffboardingHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireInternal(w, r)
	if !ok {
		return
	}
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	preserve := true
	if req.PreserveAuditLogs != nil {
		preserve = *req.PreserveAuditLogs
	}

	result, err := h.offboarding.InitiateOffboarding(r.Context(), service.InitiateOffboardingInput{
		OrganizationID:    orgID,
		RequestedBy:       actor,
		Reason:            req.Reason,
		GracePeriodDays:   req.GracePeriodDays,
		PreserveAuditLogs: preserve,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domain.ErrOrganizationDeleted):
			respondWithError(w, http.StatusConflict, "Organization is already being offboarded")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to initiate offboarding")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *OffboardingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireInternal(w, r)
	if !ok {
		return
	}
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.offboarding.CancelOffboarding(r.Context(), orgID, actor, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domain.ErrNotSoftDeleted):
			respondWithError(w, http.StatusConflict, "Organization is not in its grace period")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to cancel offboarding")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type executeRequest struct {
	PreserveAuditLogs  *bool `json:"preserve_audit_logs"`
	PreserveCompliance *bool `json:"preserve_compliance"`
}

func (h *OffboardingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireInternal(w, r)
	if !ok {
		return
	}
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	preserveAudit := true
	if req.PreserveAuditLogs != nil {
		preserveAudit = *req.PreserveAuditLogs
	}
	preserveCompliance := true
	if req.PreserveCompliance != nil {
		preserveCompliance = *req.PreserveCompliance
	}

	result, err := h.offboarding.ExecuteHardDelete(r.Context(), service.HardDeleteInput{
		OrganizationID:     orgID,
		ExecutedBy:         actor,
		PreserveAuditLogs:  preserveAudit,
		PreserveCompliance: preserveCompliance,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domain.ErrNotSoftDeleted):
			respondWithError(w, http.StatusConflict, "Organization has not been soft-deleted")
		case errors.Is(err, domain.ErrGracePeriodActive):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to execute hard delete")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Pending lists soft-deleted organizations awaiting hard delete.
func (h *OffboardingHandler) Pending(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireInternal(w, r); !ok {
		return
	}

	pending, err := h.offboarding.PendingDeletions(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list pending deletions")
		return
	}

	respondWithJSON(w, http.StatusOK, pending)
}
