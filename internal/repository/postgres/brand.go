package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	"github.com/utafrali/PrinterCatalog/pkg/database"
	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
)

const brandColumns = `id, name, created_at, updated_at`

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	pool database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool database.DBTX) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// Count returns the number of brands.
func (r *BrandRepository) Count(ctx context.Context) (n int64, err error) {
	const query = `SELECT COUNT(*) FROM brands`
	ctx, done := database.TraceQuery(ctx, "brands.count", query)
	defer func() { done(err) }()

	if err = r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count brands: %w", err)
	}
	return n, nil
}

// GetByID retrieves a brand by its id.
func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (b *domain.Brand, err error) {
	const query = `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`
	ctx, done := database.TraceQuery(ctx, "brands.get_by_id", query)
	defer func() { done(ignoreNotFound(err)) }()

	b, err = scanBrand(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get brand by id: %w", err)
	}
	return b, nil
}

// GetByName retrieves a brand by its exact name.
func (r *BrandRepository) GetByName(ctx context.Context, name string) (b *domain.Brand, err error) {
	const query = `SELECT ` + brandColumns + ` FROM brands WHERE name = $1`
	ctx, done := database.TraceQuery(ctx, "brands.get_by_name", query)
	defer func() { done(ignoreNotFound(err)) }()

	b, err = scanBrand(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get brand by name: %w", err)
	}
	return b, nil
}

// NameTakenByOther reports whether a brand other than id already uses name.
func (r *BrandRepository) NameTakenByOther(ctx context.Context, name string, id uuid.UUID) (taken bool, err error) {
	const query = `SELECT EXISTS(SELECT 1 FROM brands WHERE name = $1 AND id <> $2)`
	ctx, done := database.TraceQuery(ctx, "brands.name_taken", query)
	defer func() { done(err) }()

	if err = r.pool.QueryRow(ctx, query, name, id).Scan(&taken); err != nil {
		return false, fmt.Errorf("check brand name: %w", err)
	}
	return taken, nil
}

// List returns all brands ordered by name.
func (r *BrandRepository) List(ctx context.Context) (brands []domain.Brand, err error) {
	const query = `SELECT ` + brandColumns + ` FROM brands ORDER BY name`
	ctx, done := database.TraceQuery(ctx, "brands.list", query)
	defer func() { done(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands = []domain.Brand{}
	for rows.Next() {
		var b domain.Brand
		if err = rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}
	return brands, nil
}

// Create inserts a new brand.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) (err error) {
	const query = `INSERT INTO brands (` + brandColumns + `) VALUES ($1, $2, $3, $4)`
	ctx, done := database.TraceQuery(ctx, "brands.create", query)
	defer func() { done(err) }()

	_, err = r.pool.Exec(ctx, query, b.ID, b.Name, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("create brand %q: %w", b.Name, apperrors.ErrAlreadyExists)
		}
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

// UpdateName renames a brand.
func (r *BrandRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (err error) {
	const query = `UPDATE brands SET name = $1, updated_at = NOW() WHERE id = $2`
	ctx, done := database.TraceQuery(ctx, "brands.update_name", query)
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx, query, name, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("update brand %s: %w", id, apperrors.ErrAlreadyExists)
		}
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update brand %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a brand.
func (r *BrandRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	const query = `DELETE FROM brands WHERE id = $1`
	ctx, done := database.TraceQuery(ctx, "brands.delete", query)
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete brand %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func scanBrand(row pgx.Row) (*domain.Brand, error) {
	var b domain.Brand
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ignoreNotFound keeps expected misses out of span error status.
func ignoreNotFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}
