package service

import (
	"fmt"

	"github.com/utafrali/PrinterCatalog/pkg/database"
	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
)

// storageErr wraps a repository failure with the operation name. Lost
// database connectivity is reported as unavailable rather than internal.
func storageErr(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	if database.IsConnectionError(err) {
		return apperrors.Unavailable("postgres", wrapped)
	}
	return wrapped
}
