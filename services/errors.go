package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Store errors. Every failure returned by Store wraps ErrStore, except
// rejected input, which wraps ErrValidation.
var (
	ErrStore      = errors.New("store error")
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("record not found")
)

// isIntegrityConflict reports whether err is a uniqueness violation
func isIntegrityConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
