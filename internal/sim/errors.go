package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter is returned, wrapped, by every operation that rejects
// its inputs before doing any work.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError describes a single rejected parameter.
type ParamError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single parameter error.
func (pe ParamError) Error() string {
	return fmt.Sprintf("%s: %s", pe.Field, pe.Message)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (pe ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// ParamErrors collects every problem found in one validation pass.
type ParamErrors []ParamError

// Error joins all field errors on one line.
func (pe ParamErrors) Error() string {
	parts := make([]string, 0, len(pe))
	for _, e := range pe {
		parts = append(parts, e.Error())
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (pe ParamErrors) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field, format string, args ...any) error {
	return ParamError{Field: field, Message: fmt.Sprintf(format, args...)}
}
