package controls

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/form"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	noop := ControlFunc(func(context.Context, form.Binding) error { return nil })

	if err := reg.Register(form.ControlInput, noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(form.ControlInput, noop); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register("", noop); err == nil {
		t.Fatalf("expected error for empty kind")
	}
	if err := reg.Register(form.ControlSelect, nil); err == nil {
		t.Fatalf("expected error for nil control")
	}
	reg.MustRegister(form.ControlCheckbox, noop)

	if !reg.Has(form.ControlInput) || reg.Has(form.ControlTextarea) {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get(form.ControlTextarea); !errors.Is(err, ErrControlNotFound) {
		t.Fatalf("expected ErrControlNotFound, got %v", err)
	}
	if diff := cmp.Diff([]form.Control{form.ControlCheckbox, form.ControlInput}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	noop := ControlFunc(func(context.Context, form.Binding) error { return nil })
	reg.MustRegister(form.ControlInput, noop)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	reg.MustRegister(form.ControlInput, noop)
}

type scriptedControl struct {
	answers   map[string][]any
	presented []string
	errors    []string
}

func (s *scriptedControl) Present(_ context.Context, b form.Binding) error {
	s.presented = append(s.presented, b.Name)
	s.errors = append(s.errors, b.Error)
	queue := s.answers[b.Name]
	if len(queue) == 0 {
		return errors.New("no answer scripted for " + b.Name)
	}
	s.answers[b.Name] = queue[1:]
	if err := b.OnChange(queue[0]); err != nil {
		return err
	}
	_, err := b.OnBlur()
	return err
}

func registryWith(control Control) *Registry {
	reg := NewRegistry()
	for _, kind := range []form.Control{form.ControlInput, form.ControlCheckbox} {
		reg.MustRegister(kind, control)
	}
	return reg
}

func TestRun_RepresentsOnlyInvalidFields(t *testing.T) {
	var submitted form.Values
	f, err := form.New([]form.Field{
		{Name: "name", Type: form.KindText, Label: "Name", Required: true},
		{Name: "id", Type: form.KindHidden, DefaultValue: "42"},
		{Name: "terms", Type: form.KindCheckbox},
	}, form.WithSubmitHandler(func(values form.Values) error {
		submitted = values
		return nil
	}))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	control := &scriptedControl{answers: map[string][]any{
		"name":  {"", "Ada"},
		"terms": {true},
	}}
	if err := Run(context.Background(), f, registryWith(control)); err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "terms", "name"}, control.presented); diff != "" {
		t.Fatalf("presentation order mismatch (-want +got):\n%s", diff)
	}
	if control.errors[2] != "Name is required" {
		t.Fatalf("expected re-presented binding to carry error, got %q", control.errors[2])
	}
	want := form.Values{"name": "Ada", "id": "42", "terms": true}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CancelInvokesHandler(t *testing.T) {
	cancelled := false
	f, err := form.New([]form.Field{{Name: "a", Type: form.KindText}},
		form.WithCancelHandler(func() { cancelled = true }))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	reg := registryWith(ControlFunc(func(context.Context, form.Binding) error {
		return ErrCancelled
	}))

	if err := Run(context.Background(), f, reg); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if !cancelled {
		t.Fatalf("expected cancel handler to run")
	}
}

func TestRun_StopsAfterMaxAttempts(t *testing.T) {
	f, err := form.New([]form.Field{{Name: "a", Type: form.KindText, Required: true}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	control := &scriptedControl{answers: map[string][]any{"a": {"", ""}}}

	err = Run(context.Background(), f, registryWith(control), WithMaxAttempts(2))
	if !errors.Is(err, ErrTooManyAttempts) || !errors.Is(err, form.ErrValidation) {
		t.Fatalf("expected attempts error wrapping validation error, got %v", err)
	}
	if len(control.presented) != 2 {
		t.Fatalf("expected two presentations, got %d", len(control.presented))
	}
}

func TestRun_InvalidHiddenFieldIsReported(t *testing.T) {
	f, err := form.New([]form.Field{
		{Name: "a", Type: form.KindText},
		{Name: "token", Type: form.KindHidden, Required: true},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	control := &scriptedControl{answers: map[string][]any{"a": {"x"}}}

	if err := Run(context.Background(), f, registryWith(control)); !errors.Is(err, form.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRun_InvalidDisabledFieldIsNotRepresented(t *testing.T) {
	f, err := form.New([]form.Field{
		{Name: "a", Type: form.KindText, Required: true, Disabled: true},
		{Name: "b", Type: form.KindText},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	control := &scriptedControl{answers: map[string][]any{"a": {""}, "b": {"x"}}}

	if err := Run(context.Background(), f, registryWith(control)); !errors.Is(err, form.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, control.presented); diff != "" {
		t.Fatalf("presented mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MissingControl(t *testing.T) {
	f, err := form.New([]form.Field{{Name: "when", Type: form.KindDate}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if err := Run(context.Background(), f, NewRegistry()); !errors.Is(err, ErrControlNotFound) {
		t.Fatalf("expected ErrControlNotFound, got %v", err)
	}
}

func TestRun_HonoursContext(t *testing.T) {
	f, err := form.New([]form.Field{{Name: "a", Type: form.KindText}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, f, NewRegistry()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
