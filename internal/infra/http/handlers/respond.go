package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/max-knopp/intellio/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError maps the usecase error taxonomy to HTTP statuses. Clients get
// a short machine-readable code; diagnostic detail stays in the server
// logs.
func writeError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		switch de.Code {
		case "UNAUTHORIZED":
			status = http.StatusUnauthorized
		case "FORBIDDEN":
			status = http.StatusForbidden
		case "LEAD_NOT_FOUND", "USER_NOT_FOUND":
			status = http.StatusNotFound
		case "INVALID_STATE":
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Error: de.Code, Message: de.Message})
		return
	}

	if te, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: te.Code, Message: "temporary failure, please retry"})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "INTERNAL_ERROR"})
}
