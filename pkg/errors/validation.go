package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateTotal checks that a sibling count can be laid out.
// A menu with zero children has nothing to place, so total must be at least 1.
func ValidateTotal(total int) error {
	if total < 1 {
		return New(ErrCodeInvalidArgument, "total must be >= 1, got %d", total)
	}
	return nil
}

// ValidateIndex checks that index addresses one of total siblings.
//
// Validation rules:
//   - total must satisfy [ValidateTotal]
//   - 0 <= index < total
//
// Out-of-range indexes are never clamped: a clamped index would silently
// stack two items on the same slot and hide the layout bug.
func ValidateIndex(index, total int) error {
	if err := ValidateTotal(total); err != nil {
		return err
	}
	if index < 0 || index >= total {
		return New(ErrCodeInvalidArgument, "index %d out of range [0,%d)", index, total)
	}
	return nil
}

// ValidatePositive checks that a named configuration value is a finite number > 0.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be > 0, got %v", name, v)
	}
	return nil
}

// ValidateFinite checks that a named coordinate is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
