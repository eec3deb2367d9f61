package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("form: validation failed")
	// ErrSubmitDisabled is returned by Submit while the form is loading.
	ErrSubmitDisabled = errors.New("form: submit disabled while loading")
	// ErrUnknownField is returned for events naming a field the form does not declare.
	ErrUnknownField = errors.New("form: unknown field")
)

// ValidationError carries the first failing message of every invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s (%s)", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is reports ErrValidation as the sentinel for this error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
