package controls

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-jsonform/pkg/form"
)

// RunOption configures Run.
type RunOption func(*runner)

// WithMaxAttempts bounds how many submit attempts Run makes. Zero or less
// means no limit.
func WithMaxAttempts(n int) RunOption {
	return func(r *runner) {
		r.maxAttempts = n
	}
}

type runner struct {
	maxAttempts int
}

// Run presents every visible field, then submits. When validation blocks the
// submit only the invalid fields are presented again, each carrying its
// error, until the submit succeeds. A control returning ErrCancelled cancels
// the form. Hidden fields are never presented.
func Run(ctx context.Context, f *form.Form, registry *Registry, opts ...RunOption) error {
	if f == nil {
		return fmt.Errorf("controls: form is required")
	}
	if registry == nil {
		return fmt.Errorf("controls: registry is required")
	}

	r := &runner{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	pending := visibleFields(f)
	for attempt := 1; ; attempt++ {
		for _, name := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := present(ctx, f, registry, name); err != nil {
				if errors.Is(err, ErrCancelled) {
					f.Cancel()
				}
				return err
			}
		}

		err := f.Submit()
		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %w", ErrTooManyAttempts, err)
		}
		pending = invalidFields(f, verr)
		if len(pending) == 0 {
			return err
		}
	}
}

func present(ctx context.Context, f *form.Form, registry *Registry, name string) error {
	binding, ok := f.Binding(name)
	if !ok {
		return fmt.Errorf("%w: %q", form.ErrUnknownField, name)
	}
	control, err := registry.Get(binding.Control)
	if err != nil {
		return err
	}
	if err := control.Present(ctx, binding); err != nil {
		return fmt.Errorf("controls: present %q: %w", name, err)
	}
	return nil
}

func visibleFields(f *form.Form) []string {
	var names []string
	for _, field := range f.Fields() {
		if form.Dispatch(field.Type).Control == form.ControlHidden {
			continue
		}
		names = append(names, field.Name)
	}
	return names
}

// invalidFields keeps declaration order. Invalid hidden or disabled fields
// cannot be fixed interactively, so they are reported rather than
// re-presented.
func invalidFields(f *form.Form, verr *form.ValidationError) []string {
	var names []string
	for _, name := range visibleFields(f) {
		if _, failed := verr.Fields[name]; !failed {
			continue
		}
		if field, ok := f.Field(name); ok && field.Disabled {
			continue
		}
		names = append(names, name)
	}
	return names
}
