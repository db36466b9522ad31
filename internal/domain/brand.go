package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
)

// Brand name length limits, counted in characters.
const (
	BrandNameMinLen = 4
	BrandNameMaxLen = 20
)

// Brand is a printer manufacturer. Names are unique across all brands.
type Brand struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBrand returns a brand with a fresh id. The name is not validated.
func NewBrand(name string) *Brand {
	now := time.Now().UTC()
	return &Brand{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateBrandName checks the emptiness and length rules, in that order.
func ValidateBrandName(name string) error {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return apperrors.InvalidInput("brand name cannot be empty")
	case n < BrandNameMinLen:
		return apperrors.InvalidInput("brand name is too short")
	case n > BrandNameMaxLen:
		return apperrors.InvalidInput("brand name is too long")
	}
	return nil
}
