// internal/handler/entitlement.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/equitylearn/entitlements/internal/middleware"
	"github.com/equitylearn/entitlements/internal/service"
)

// EntitlementHandler serves entitlement resolution and action-gate checks.
type EntitlementHandler struct {
	entitlements *service.EntitlementService
	gate         *service.GateService
}

func NewEntitlementHandler(entitlements *service.EntitlementService, gate *service.GateService) *EntitlementHandler {
	return &EntitlementHandler{
		entitlements: entitlements,
		gate:         gate,
	}
}

// Resolve returns the caller's effective entitlements. Resolution is
// fail-open: a degraded result is served with HTTP 200 rather than an error,
// so a datastore hiccup does not lock callers out of the application.
func (h *EntitlementHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ents, _ := h.entitlements.Resolve(r.Context(), userID)
	respondWithJSON(w, http.StatusOK, ents)
}

type checkActionRequest struct {
	Action       string `json:"action"`
	CurrentUsage int    `json:"current_usage"`
}

// CheckAction runs the fail-closed limit gate for one action.
func (h *EntitlementHandler) CheckAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req checkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	decision := h.gate.CanPerformAction(r.Context(), userID, service.Action(req.Action), req.CurrentUsage)
	respondWithJSON(w, http.StatusOK, decision)
}
