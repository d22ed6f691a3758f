package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

// handleDBError is a package-level helper for handling database errors
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// applyPagination applies limit/offset with a sane default page size.
// A negative limit disables pagination entirely; aggregation reads use it to
// fetch the full table.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit < 0 {
		return query
	}
	if limit == 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
