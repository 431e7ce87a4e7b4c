package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/auth"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var params auth.SignUpParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	resp, err := h.auth.SignUp(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var params auth.SignInParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	resp, err := h.auth.SignIn(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.FindByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
