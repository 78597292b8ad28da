package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

// TranslateError maps a gorm or driver error onto the domain taxonomy.
// resource names the entity involved, e.g. "library entry".
// Errors that already carry a domain code pass through unchanged.
func TranslateError(err error, resource string) error {
	if err == nil {
		return nil
	}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return err
	}

	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.Wrap(domainerrors.CodeNotFound, resource+" not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(msg, "UNIQUE constraint failed"):
		return domainerrors.Wrap(domainerrors.CodeDuplicateEntry, resource+" already exists", err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domainerrors.Wrap(domainerrors.CodeNotFound, resource+" references a missing record", err)
	default:
		return domainerrors.StoreUnavailable(resource, err)
	}
}

// NotFoundIfNoRows returns a NotFound error when an update or delete
// matched nothing.
func NotFoundIfNoRows(result *gorm.DB, resource string) error {
	if result.Error != nil {
		return TranslateError(result.Error, resource)
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound(resource + " not found")
	}
	return nil
}
