package testsupport

import (
	"context"

	"github.com/goliatone/go-jsonform/pkg/controls"
	"github.com/goliatone/go-jsonform/pkg/form"
)

// Script answers control presentations from a fixed list of values per
// field. Each presentation of a field consumes the next answer; once a
// field runs out, its last answer is repeated. Fields without answers are
// committed unchanged.
type Script struct {
	answers   map[string][]any
	Presented []string
	Errors    map[string][]string
}

// NewScript builds a Script from per-field answers.
func NewScript(answers map[string][]any) *Script {
	copied := make(map[string][]any, len(answers))
	for name, values := range answers {
		copied[name] = append([]any(nil), values...)
	}
	return &Script{answers: copied, Errors: make(map[string][]string)}
}

// Registry returns a control registry that routes every control kind to the
// script.
func (s *Script) Registry() *controls.Registry {
	reg := controls.NewRegistry()
	for _, kind := range []form.Control{
		form.ControlInput, form.ControlPassword, form.ControlTextarea,
		form.ControlSelect, form.ControlSearchSelect, form.ControlCheckbox,
		form.ControlSwitch, form.ControlDatePicker, form.ControlFileUpload,
		form.ControlHidden,
	} {
		reg.MustRegister(kind, controls.ControlFunc(s.present))
	}
	return reg
}

func (s *Script) present(_ context.Context, b form.Binding) error {
	s.Presented = append(s.Presented, b.Name)
	if b.Error != "" {
		s.Errors[b.Name] = append(s.Errors[b.Name], b.Error)
	}

	value := b.Value
	if queue := s.answers[b.Name]; len(queue) > 0 {
		value = queue[0]
		if len(queue) > 1 {
			s.answers[b.Name] = queue[1:]
		}
	}
	if err := b.OnChange(value); err != nil {
		return err
	}
	_, err := b.OnBlur()
	return err
}
