package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	"github.com/utafrali/PrinterCatalog/internal/repository"
	"github.com/utafrali/PrinterCatalog/pkg/cache"
	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
)

// BrandEvents publishes brand domain events.
type BrandEvents interface {
	BrandCreated(ctx context.Context, b *domain.Brand) error
	BrandUpdated(ctx context.Context, id uuid.UUID, name string) error
	BrandDeleted(ctx context.Context, id uuid.UUID) error
}

// BrandService implements the business logic for brand operations.
type BrandService struct {
	repo   repository.BrandRepository
	cache  readCache
	events BrandEvents
	logger *slog.Logger
}

// NewBrandService creates a new brand service. Count and list results are
// cached in c for ttl.
func NewBrandService(repo repository.BrandRepository, c cache.Cache, ttl time.Duration, events BrandEvents, logger *slog.Logger) *BrandService {
	return &BrandService{
		repo:   repo,
		cache:  readCache{cache: c, ttl: ttl, logger: logger},
		events: events,
		logger: logger,
	}
}

// Count returns the number of brands.
func (s *BrandService) Count(ctx context.Context) (int64, error) {
	n, err := readThrough(ctx, s.cache, keyBrandCount, s.repo.Count)
	if err != nil {
		return 0, storageErr("count brands", err)
	}
	return n, nil
}

// Get returns the brand with the given id.
func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("brand", id.String())
		}
		return nil, storageErr("get brand", err)
	}
	return b, nil
}

// List returns all brands.
func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	brands, err := readThrough(ctx, s.cache, keyBrandList, s.repo.List)
	if err != nil {
		return nil, storageErr("list brands", err)
	}
	return brands, nil
}

// Create adds a brand. An existing brand with the same name is reported as
// a conflict before the name rules are checked.
func (s *BrandService) Create(ctx context.Context, name string) (*domain.Brand, error) {
	_, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return nil, apperrors.AlreadyExists("brand", "name", name)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, storageErr("check brand name", err)
	}

	if err := domain.ValidateBrandName(name); err != nil {
		return nil, err
	}

	b := domain.NewBrand(name)
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("brand", "name", name)
		}
		return nil, storageErr("create brand", err)
	}

	s.cache.invalidate(ctx, keyBrandCount, keyBrandList)
	if err := s.events.BrandCreated(ctx, b); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.created event",
			slog.String("brand_id", b.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.String("brand_id", b.ID.String()),
		slog.String("name", b.Name),
	)
	return b, nil
}

// Update renames a brand. A name held by another brand is rejected as
// invalid input rather than a conflict.
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, name string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := domain.ValidateBrandName(name); err != nil {
		return err
	}

	taken, err := s.repo.NameTakenByOther(ctx, name, id)
	if err != nil {
		return storageErr("check brand name", err)
	}
	if taken {
		return nameInUse(name)
	}

	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyExists):
			return nameInUse(name)
		case errors.Is(err, apperrors.ErrNotFound):
			return apperrors.NotFound("brand", id.String())
		}
		return storageErr("update brand", err)
	}

	s.cache.invalidate(ctx, keyBrandCount, keyBrandList)
	if err := s.events.BrandUpdated(ctx, id, name); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.updated event",
			slog.String("brand_id", id.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand updated",
		slog.String("brand_id", id.String()),
		slog.String("name", name),
	)
	return nil
}

// Delete removes a brand.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("brand", id.String())
		}
		return storageErr("delete brand", err)
	}

	s.cache.invalidate(ctx, keyBrandCount, keyBrandList)
	if err := s.events.BrandDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.deleted event",
			slog.String("brand_id", id.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand deleted", slog.String("brand_id", id.String()))
	return nil
}

func nameInUse(name string) *apperrors.AppError {
	return apperrors.InvalidInput(fmt.Sprintf("brand name %q is already in use", name))
}
