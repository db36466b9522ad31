package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	"github.com/utafrali/PrinterCatalog/internal/event"
	"github.com/utafrali/PrinterCatalog/internal/service"
	"github.com/utafrali/PrinterCatalog/pkg/cache"
	"github.com/utafrali/PrinterCatalog/pkg/health"
	"github.com/utafrali/PrinterCatalog/pkg/httputil"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockBrandRepo struct {
	mock.Mock
}

func (m *mockBrandRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepo) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepo) NameTakenByOther(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBrandRepo) List(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func (m *mockBrandRepo) Create(ctx context.Context, b *domain.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBrandRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *mockBrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPrinterRepo struct {
	mock.Mock
}

func (m *mockPrinterRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPrinterRepo) List(ctx context.Context) ([]domain.Printer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Printer), args.Error(1)
}

func (m *mockPrinterRepo) Create(ctx context.Context, p *domain.Printer) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrinterRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Test helpers
// =============================================================================

type testEnv struct {
	router   http.Handler
	brands   *mockBrandRepo
	printers *mockPrinterRepo
	health   *health.Handler
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	logger := newTestLogger()
	producer := event.NewProducer(event.NopPublisher{}, "printer-catalog", logger)

	env := &testEnv{
		brands:   &mockBrandRepo{},
		printers: &mockPrinterRepo{},
		health:   health.NewHandler(),
	}
	brandSvc := service.NewBrandService(env.brands, cache.Nop{}, time.Minute, producer, logger)
	printerSvc := service.NewPrinterService(env.printers, cache.Nop{}, time.Minute, producer, logger)

	env.router = NewRouter(brandSvc, printerSvc, env.health, RouterConfig{
		ServiceName:     "printer-catalog-test",
		AllowedOrigins:  []string{"*"},
		PprofAllowCIDRs: []string{"127.0.0.1/32"},
	}, logger)
	return env
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
