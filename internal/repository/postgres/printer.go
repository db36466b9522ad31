package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	"github.com/utafrali/PrinterCatalog/pkg/database"
)

const printerColumns = `id, name, model, brand, toner, drum, created_at`

// PrinterRepository implements repository.PrinterRepository using PostgreSQL.
type PrinterRepository struct {
	pool database.DBTX
}

// NewPrinterRepository creates a new PostgreSQL-backed printer repository.
func NewPrinterRepository(pool database.DBTX) *PrinterRepository {
	return &PrinterRepository{pool: pool}
}

// Count returns the number of printers.
func (r *PrinterRepository) Count(ctx context.Context) (n int64, err error) {
	const query = `SELECT COUNT(*) FROM printers`
	ctx, done := database.TraceQuery(ctx, "printers.count", query)
	defer func() { done(err) }()

	if err = r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count printers: %w", err)
	}
	return n, nil
}

// List returns all printers, oldest first.
func (r *PrinterRepository) List(ctx context.Context) (printers []domain.Printer, err error) {
	const query = `SELECT ` + printerColumns + ` FROM printers ORDER BY created_at, id`
	ctx, done := database.TraceQuery(ctx, "printers.list", query)
	defer func() { done(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list printers: %w", err)
	}
	defer rows.Close()

	printers = []domain.Printer{}
	for rows.Next() {
		var p domain.Printer
		if err = rows.Scan(&p.ID, &p.Name, &p.Model, &p.Brand, &p.Toner, &p.Drum, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan printer row: %w", err)
		}
		printers = append(printers, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate printer rows: %w", err)
	}
	return printers, nil
}

// Create inserts a new printer.
func (r *PrinterRepository) Create(ctx context.Context, p *domain.Printer) (err error) {
	const query = `INSERT INTO printers (` + printerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	ctx, done := database.TraceQuery(ctx, "printers.create", query)
	defer func() { done(err) }()

	_, err = r.pool.Exec(ctx, query, p.ID, p.Name, p.Model, p.Brand, p.Toner, p.Drum, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create printer: %w", err)
	}
	return nil
}

// Delete removes a printer if it exists.
func (r *PrinterRepository) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	const query = `DELETE FROM printers WHERE id = $1`
	ctx, done := database.TraceQuery(ctx, "printers.delete", query)
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete printer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
