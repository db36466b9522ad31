package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/PrinterCatalog/internal/service"
	"github.com/utafrali/PrinterCatalog/pkg/httputil"
)

// BrandHandler handles HTTP requests for brand endpoints.
type BrandHandler struct {
	service *service.BrandService
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand HTTP handler.
func NewBrandHandler(svc *service.BrandService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateBrandRequest is the JSON request body for creating a brand. Name
// rules are enforced by the service so clients get the domain messages.
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// UpdateBrandRequest is the JSON request body for renaming a brand.
type UpdateBrandRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// DeleteRequest is the JSON request body for deleting a brand or printer.
type DeleteRequest struct {
	ID string `json:"id" validate:"required"`
}

// --- Handlers ---

// CountBrands handles GET /api/v1/brands/count
func (h *BrandHandler) CountBrands(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Count(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: n})
}

// GetBrand handles GET /api/v1/brands/{id}
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	brand, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}

// ListBrands handles GET /api/v1/brands
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// CreateBrand handles POST /api/v1/brands
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if !httputil.DecodeRequest(w, r, &req) {
		return
	}

	brand, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", "/api/v1/brands/"+brand.ID.String())
	httputil.WriteStatus(w, http.StatusCreated)
}

// UpdateBrand handles PUT /api/v1/brands
func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrandRequest
	if !httputil.DecodeRequest(w, r, &req) {
		return
	}

	id, ok := httputil.ParseUUID(w, req.ID)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, req.Name); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteStatus(w, http.StatusOK)
}

// DeleteBrand handles DELETE /api/v1/brands
func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if !httputil.DecodeRequest(w, r, &req) {
		return
	}

	id, ok := httputil.ParseUUID(w, req.ID)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteStatus(w, http.StatusOK)
}
