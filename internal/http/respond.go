package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/denred/online-store-backend/internal/apperr"
)

type errorResponse struct {
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Printf("internal error: %v", err)
	}

	errorType := "COMMON"
	if apperr.IsKind(err, apperr.KindValidation) {
		errorType = "VALIDATION"
	}
	writeJSON(w, status, errorResponse{ErrorType: errorType, Message: apperr.MessageOf(err)})
}
