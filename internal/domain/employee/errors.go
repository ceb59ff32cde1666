package employee

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("Employee not found")

// ValidationError lists every offending field, not only the first.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func invalid(fields ...string) error {
	return errors.WithStack(&ValidationError{Fields: fields})
}
