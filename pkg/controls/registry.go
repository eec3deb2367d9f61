package controls

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-jsonform/pkg/form"
)

// Control presents one field binding and reports edits back through the
// binding's OnChange and OnBlur callbacks.
type Control interface {
	Present(ctx context.Context, binding form.Binding) error
}

// ControlFunc adapts a function to Control.
type ControlFunc func(ctx context.Context, binding form.Binding) error

// Present calls fn.
func (fn ControlFunc) Present(ctx context.Context, binding form.Binding) error {
	return fn(ctx, binding)
}

// Registry stores controls by the form.Control they serve. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	controls map[form.Control]Control
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		controls: make(map[form.Control]Control),
	}
}

// Register adds control for kind. Duplicate kinds return an error.
func (r *Registry) Register(kind form.Control, control Control) error {
	if control == nil {
		return fmt.Errorf("controls: control is required")
	}
	if kind == "" {
		return fmt.Errorf("controls: control kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controls[kind]; exists {
		return fmt.Errorf("controls: control %q already registered", kind)
	}
	r.controls[kind] = control
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind form.Control, control Control) {
	if err := r.Register(kind, control); err != nil {
		panic(err)
	}
}

// Replace registers control for kind, overriding any existing entry.
func (r *Registry) Replace(kind form.Control, control Control) error {
	if control == nil {
		return fmt.Errorf("controls: control is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[kind] = control
	return nil
}

// Get retrieves the control for kind.
func (r *Registry) Get(kind form.Control) (Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, ok := r.controls[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrControlNotFound, kind)
	}
	return control, nil
}

// Has reports whether a control is registered for kind.
func (r *Registry) Has(kind form.Control) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.controls[kind]
	return ok
}

// List returns the registered control kinds, sorted.
func (r *Registry) List() []form.Control {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]form.Control, 0, len(r.controls))
	for kind := range r.controls {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
