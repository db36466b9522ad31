package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/utafrali/PrinterCatalog/internal/domain"
)

// BrandRepository defines persistence operations for brands. Lookups return
// apperrors.ErrNotFound when no row matches; writes that collide with the
// unique name constraint return apperrors.ErrAlreadyExists.
type BrandRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	GetByName(ctx context.Context, name string) (*domain.Brand, error)
	// NameTakenByOther reports whether another brand than id uses name.
	NameTakenByOther(ctx context.Context, name string, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]domain.Brand, error)
	Create(ctx context.Context, brand *domain.Brand) error
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrinterRepository defines persistence operations for printers.
type PrinterRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]domain.Printer, error)
	Create(ctx context.Context, printer *domain.Printer) error
	// Delete removes the printer if present and reports whether a row was
	// deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
