// internal/handler/gap_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
	"github.com/unclebandit/gapgrabber-web/internal/service"
)

// GapHandler exposes the adapter's view models as JSON under /api/v1.
type GapHandler struct {
	Adapter service.Adapter
	Logger  *zap.Logger
}

func NewGapHandler(adapter service.Adapter, logger *zap.Logger) *GapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GapHandler{Adapter: adapter, Logger: logger}
}

// Routes returns the API sub-router.
func (h *GapHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/slots", h.ListSlotsHandler)
	r.Get("/slots/{slotKey}", h.GetSlotHandler)
	r.Post("/slots/{slotKey}/fill", h.FillSlotHandler)
	r.Get("/workflows", h.ListWorkflowsHandler)
	r.Get("/workflows/{workflowKey}", h.GetWorkflowHandler)
	r.Get("/customers/{customerId}/messages", h.CustomerMessagesHandler)
	return r
}

func (h *GapHandler) ListSlotsHandler(w http.ResponseWriter, r *http.Request) {
	slots, err := h.Adapter.ListSlots(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (h *GapHandler) GetSlotHandler(w http.ResponseWriter, r *http.Request) {
	slot, err := h.Adapter.CancelSlot(r.Context(), chi.URLParam(r, "slotKey"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

// FillSlotHandler cancels the slot and launches its fill workflow. Omitted
// numeric fields take the form defaults.
func (h *GapHandler) FillSlotHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Reason          string `json:"reason"`
		DiscountPercent *int   `json:"discountPercent"`
		WaitTimeMinutes *int   `json:"waitTimeMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, r, appErrors.NewValidation("body", "invalid request body: "+err.Error()))
		return
	}

	req := service.NewFillRequest(payload.Reason)
	if payload.DiscountPercent != nil {
		req.DiscountPercent = *payload.DiscountPercent
	}
	if payload.WaitTimeMinutes != nil {
		req.WaitTimeMinutes = *payload.WaitTimeMinutes
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	wf, err := h.Adapter.StartFillWorkflow(r.Context(), chi.URLParam(r, "slotKey"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, wf)
}

func (h *GapHandler) ListWorkflowsHandler(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.Adapter.ListWorkflows(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workflows": workflows})
}

func (h *GapHandler) GetWorkflowHandler(w http.ResponseWriter, r *http.Request) {
	wf, err := h.Adapter.GetWorkflow(r.Context(), chi.URLParam(r, "workflowKey"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (h *GapHandler) CustomerMessagesHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "customerId")
	customerID, err := strconv.Atoi(idStr)
	if err != nil || customerID <= 0 {
		h.writeError(w, r, appErrors.NewNotFound("customer", idStr))
		return
	}

	var campaignID *int
	if v := r.URL.Query().Get("campaign_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, r, appErrors.NewValidation("campaign_id", "invalid campaign id"))
			return
		}
		campaignID = &id
	}

	thread, err := h.Adapter.GetCustomerMessages(r.Context(), customerID, campaignID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

func (h *GapHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *appErrors.ValidationError
		nf *appErrors.NotFoundError
		re *appErrors.RequestError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &re):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error("api request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
