package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/PrinterCatalog/internal/service"
	"github.com/utafrali/PrinterCatalog/pkg/httputil"
)

// PrinterHandler handles HTTP requests for printer endpoints.
type PrinterHandler struct {
	service *service.PrinterService
	logger  *slog.Logger
}

// NewPrinterHandler creates a new printer HTTP handler.
func NewPrinterHandler(svc *service.PrinterService, logger *slog.Logger) *PrinterHandler {
	return &PrinterHandler{
		service: svc,
		logger:  logger,
	}
}

// CreatePrinterRequest is the JSON request body for creating a printer.
// The references are parsed by the service, which names the offending field.
type CreatePrinterRequest struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Brand string `json:"brand"`
	Toner string `json:"toner"`
	Drum  string `json:"drum"`
}

// CountPrinters handles GET /api/v1/printers/count
func (h *PrinterHandler) CountPrinters(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Count(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: n})
}

// ListPrinters handles GET /api/v1/printers
func (h *PrinterHandler) ListPrinters(w http.ResponseWriter, r *http.Request) {
	printers, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: printers})
}

// CreatePrinter handles POST /api/v1/printers
func (h *PrinterHandler) CreatePrinter(w http.ResponseWriter, r *http.Request) {
	var req CreatePrinterRequest
	if !httputil.DecodeRequest(w, r, &req) {
		return
	}

	if _, err := h.service.Create(r.Context(), service.CreatePrinterInput{
		Name:  req.Name,
		Model: req.Model,
		Brand: req.Brand,
		Toner: req.Toner,
		Drum:  req.Drum,
	}); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Printers are not individually addressable, so no Location is set.
	httputil.WriteStatus(w, http.StatusCreated)
}

// DeletePrinter handles DELETE /api/v1/printers
func (h *PrinterHandler) DeletePrinter(w http.ResponseWriter, r *http.Request) {
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
