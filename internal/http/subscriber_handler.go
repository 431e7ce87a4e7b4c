package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/subscriber"
)

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var params subscriber.SubscribeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	s, err := h.subscribers.Subscribe(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	if err := h.subscribers.Unsubscribe(r.Context(), req.Email); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"unsubscribed": true})
}

func (h *Handler) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.subscribers.Status(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]subscriber.SubscriptionStatus{"status": status})
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.subscribers.Preferences(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string                 `json:"email"`
		Preferences subscriber.Preferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	if err := h.subscribers.SetPreferences(r.Context(), req.Email, req.Preferences); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req.Preferences)
}
