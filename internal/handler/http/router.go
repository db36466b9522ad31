package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/PrinterCatalog/internal/service"
	"github.com/utafrali/PrinterCatalog/pkg/health"
	"github.com/utafrali/PrinterCatalog/pkg/middleware"
)

// RouterConfig holds the cross-cutting settings of the HTTP surface.
type RouterConfig struct {
	ServiceName     string
	AllowedOrigins  []string
	PprofAllowCIDRs []string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(
	brandService *service.BrandService,
	printerService *service.PrinterService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowCIDRs, logger)

	brandHandler := NewBrandHandler(brandService, logger)

	r.Route("/api/v1/brands", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		r.Get("/count", brandHandler.CountBrands)
		r.Get("/{id}", brandHandler.GetBrand)
		r.Get("/", brandHandler.ListBrands)
		r.Post("/", brandHandler.CreateBrand)
		r.Put("/", brandHandler.UpdateBrand)
		r.Delete("/", brandHandler.DeleteBrand)
	})

	printerHandler := NewPrinterHandler(printerService, logger)

	r.Route("/api/v1/printers", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		r.Get("/count", printerHandler.CountPrinters)
		r.Get("/", printerHandler.ListPrinters)
		r.Post("/", printerHandler.CreatePrinter)
		r.Delete("/", printerHandler.DeletePrinter)
	})

	return r
}
