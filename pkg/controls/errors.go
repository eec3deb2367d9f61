package controls

import "errors"

var (
	// ErrCancelled is returned by a control when the user dismisses the form.
	ErrCancelled = errors.New("controls: cancelled")
	// ErrControlNotFound is returned when no control serves a binding.
	ErrControlNotFound = errors.New("controls: control not found")
	// ErrTooManyAttempts is returned by Run once the attempt limit is spent.
	ErrTooManyAttempts = errors.New("controls: too many submit attempts")
)
