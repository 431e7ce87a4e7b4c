package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/product"
)

type searchRequest struct {
	product.Filter
	Sort product.Sort `json:"sort,omitempty"`
	Page int          `json:"page,omitempty"`
	Size int          `json:"size,omitempty"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	products, err := h.products.FindAll(r.Context(), page)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	products, err := h.products.Search(r.Context(), req.Filter, product.Page{Page: req.Page, Size: req.Size}, req.Sort)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.FindByID(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var params product.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	p, err := h.products.Create(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var params product.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}

	p, err := h.products.Update(r.Context(), chi.URLParam(r, "productId"), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.products.Delete(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func pageFromQuery(r *http.Request) (product.Page, error) {
	var page product.Page
	q := r.URL.Query()
	for name, dst := range map[string]*int{"page": &page.Page, "size": &page.Size} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return product.Page{}, apperr.Validation(name + " must be a non-negative integer")
		}
		*dst = n
	}
	return page, nil
}
