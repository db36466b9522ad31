package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	"github.com/utafrali/PrinterCatalog/pkg/cache"
)

// --- Mock Repositories ---

type mockBrandRepository struct {
	mock.Mock
}

func (m *mockBrandRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) NameTakenByOther(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBrandRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *mockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPrinterRepository struct {
	mock.Mock
}

func (m *mockPrinterRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPrinterRepository) List(ctx context.Context) ([]domain.Printer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Printer), args.Error(1)
}

func (m *mockPrinterRepository) Create(ctx context.Context, p *domain.Printer) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPrinterRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock Events ---

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) BrandCreated(ctx context.Context, b *domain.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockEvents) BrandUpdated(ctx context.Context, id uuid.UUID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *mockEvents) BrandDeleted(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEvents) PrinterCreated(ctx context.Context, p *domain.Printer) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockEvents) PrinterDeleted(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// --- Test Helpers ---

const testTTL = time.Minute

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestCache returns a Redis-backed cache on top of miniredis.
func newTestCache(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedis(client, "catalog:", cache.DefaultBreakerConfig("test"), newTestLogger()), mr
}
