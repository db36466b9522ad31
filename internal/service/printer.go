package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	"github.com/utafrali/PrinterCatalog/internal/repository"
	"github.com/utafrali/PrinterCatalog/pkg/cache"
	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
)

// PrinterEvents publishes printer domain events.
type PrinterEvents interface {
	PrinterCreated(ctx context.Context, p *domain.Printer) error
	PrinterDeleted(ctx context.Context, id uuid.UUID) error
}

// CreatePrinterInput holds the parameters for creating a printer. The
// references are UUID strings.
type CreatePrinterInput struct {
	Name  string
	Model string
	Brand string
	Toner string
	Drum  string
}

// PrinterService implements the business logic for printer operations.
type PrinterService struct {
	repo   repository.PrinterRepository
	cache  readCache
	events PrinterEvents
	logger *slog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(repo repository.PrinterRepository, c cache.Cache, ttl time.Duration, events PrinterEvents, logger *slog.Logger) *PrinterService {
	return &PrinterService{
		repo:   repo,
		cache:  readCache{cache: c, ttl: ttl, logger: logger},
		events: events,
		logger: logger,
	}
}

// Count returns the number of printers.
func (s *PrinterService) Count(ctx context.Context) (int64, error) {
	n, err := readThrough(ctx, s.cache, keyPrinterCount, s.repo.Count)
	if err != nil {
		return 0, storageErr("count printers", err)
	}
	return n, nil
}

// List returns all printers.
func (s *PrinterService) List(ctx context.Context) ([]domain.Printer, error) {
	printers, err := readThrough(ctx, s.cache, keyPrinterList, s.repo.List)
	if err != nil {
		return nil, storageErr("list printers", err)
	}
	return printers, nil
}

// Create adds a printer. References are parsed but not checked for
// existence.
func (s *PrinterService) Create(ctx context.Context, in CreatePrinterInput) (*domain.Printer, error) {
	brand, err := parseRef("brand", in.Brand)
	if err != nil {
		return nil, err
	}
	toner, err := parseRef("toner", in.Toner)
	if err != nil {
		return nil, err
	}
	drum, err := parseRef("drum", in.Drum)
	if err != nil {
		return nil, err
	}

	p := domain.NewPrinter(in.Name, in.Model, brand, toner, drum)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, storageErr("create printer", err)
	}

	s.cache.invalidate(ctx, keyPrinterCount, keyPrinterList)
	if err := s.events.PrinterCreated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish printer.created event",
			slog.String("printer_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "printer created", slog.String("printer_id", p.ID.String()))
	return p, nil
}

// Delete removes a printer. Deleting an unknown id succeeds.
func (s *PrinterService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageErr("delete printer", err)
	}
	if !deleted {
		s.logger.DebugContext(ctx, "printer delete matched no rows", slog.String("printer_id", id.String()))
		return nil
	}

	s.cache.invalidate(ctx, keyPrinterCount, keyPrinterList)
	if err := s.events.PrinterDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish printer.deleted event",
			slog.String("printer_id", id.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "printer deleted", slog.String("printer_id", id.String()))
	return nil
}

func parseRef(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a valid UUID", field))
	}
	return id, nil
}
