package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/entity"
	"github.com/max-knopp/intellio/internal/infra/http/middleware"
	"github.com/max-knopp/intellio/internal/usecase"
)

// LeadHandler exposes the inbox and the review actions to the dashboard.
type LeadHandler struct {
	leads     usecase.LeadRepositoryInterface
	lifecycle *usecase.LeadLifecycleUseCase
	log       zerolog.Logger
}

func NewLeadHandler(leads usecase.LeadRepositoryInterface, lifecycle *usecase.LeadLifecycleUseCase, log zerolog.Logger) *LeadHandler {
	return &LeadHandler{
		leads:     leads,
		lifecycle: lifecycle,
		log:       log.With().Str("handler", "leads").Logger(),
	}
}

// HandleGetInbox returns the caller's leads partitioned by status and ranked
// per bucket. ?sort= selects the mode, defaulting to recency-then-score.
func (h *LeadHandler) HandleGetInbox(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	mode := usecase.SortMode(r.URL.Query().Get("sort"))
	if mode == "" {
		mode = usecase.SortRecencyThenScore
	}
	if !mode.Valid() {
		writeError(w, usecase.NewValidationError("unknown sort mode: "+string(mode)))
		return
	}

	leads, err := h.leads.FindAllForUser(r.Context(), session.UserID)
	if err != nil {
		writeError(w, usecase.NewDependencyError("store", err.Error()))
		return
	}

	snapshot := usecase.BuildInbox(leads, mode, time.Now().UTC())
	writeJSON(w, http.StatusOK, snapshot)
}

type sendRequest struct {
	Message string `json:"message"`
}

func (h *LeadHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.Send(r.Context(), session, id, req.Message); err != nil {
		middleware.RecordDispatch("failure")
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("outreach")
		}
		writeError(w, err)
		return
	}

	middleware.RecordTransition("send")
	middleware.RecordDispatch("success")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type rejectRequest struct {
	Reasons []rejectReason `json:"reasons"`
}

// rejectReason carries either a predefined reason id or free text, never
// both.
type rejectReason struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

func (h *LeadHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	reasons := make([]entity.RejectionReason, 0, len(req.Reasons))
	for _, raw := range req.Reasons {
		var reason entity.RejectionReason
		var err error
		if raw.ID != "" {
			reason, err = entity.PredefinedReason(raw.ID)
		} else {
			reason, err = entity.FreeTextReason(raw.Text)
		}
		if err != nil {
			writeError(w, usecase.NewValidationError(err.Error()))
			return
		}
		reasons = append(reasons, reason)
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.Reject(r.Context(), session, id, reasons); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition("reject")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *LeadHandler) HandleMarkCommented(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.MarkCommented(r.Context(), session, id); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition("mark_commented")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus is the administrative override used by the contacts view.
func (h *LeadHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.SetStatus(r.Context(), session, id, entity.LeadStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordTransition("set_status")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *LeadHandler) HandleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.UpdateNotes(r.Context(), session, id, req.Notes); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type messageRequest struct {
	Message string `json:"message"`
}

func (h *LeadHandler) HandleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.UpdateMessage(r.Context(), session, id, req.Message); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func (h *LeadHandler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, usecase.ErrUnauthorized)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.lifecycle.UpdateComment(r.Context(), session, id, req.Comment); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
