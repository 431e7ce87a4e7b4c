package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/denred/online-store-backend/internal/apperr"
)

const maxUploadBytes = 32 << 20

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, apperr.Validation("invalid multipart form"))
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, apperr.Validation("file field is required"))
		return
	}
	defer src.Close()

	f, err := h.files.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), src)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *Handler) FileURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.files.URL(r.Context(), chi.URLParam(r, "fileId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.files.Delete(r.Context(), chi.URLParam(r, "fileId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
