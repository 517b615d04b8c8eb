package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/max-knopp/intellio/internal/infra/http/middleware"
	"github.com/max-knopp/intellio/internal/usecase"
)

// Ingress payloads are bounded by field-level limits already; this is the
// outer guard against oversized bodies.
const maxIngressBodyBytes = 64 * 1024

// WebhookHandler receives leads from the scraping/enrichment pipeline.
type WebhookHandler struct {
	receiveLead *usecase.ReceiveLeadUseCase
	apiKey      string
	log         zerolog.Logger
}

func NewWebhookHandler(receiveLead *usecase.ReceiveLeadUseCase, apiKey string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		receiveLead: receiveLead,
		apiKey:      apiKey,
		log:         log.With().Str("handler", "webhook").Logger(),
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-Api-Key")
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
		h.log.Warn().Str("remote", r.RemoteAddr).Msg("ingress with invalid API key")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "invalid API key"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxIngressBodyBytes)

	var input usecase.ReceiveLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON"})
		return
	}

	output, err := h.receiveLead.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadReceived()
	writeJSON(w, http.StatusCreated, output)
}
