package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/payment"
)

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var params payment.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	p, err := h.payments.Create(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
