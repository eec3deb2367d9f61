package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-jsonform/pkg/controls"
	"github.com/goliatone/go-jsonform/pkg/form"
	"github.com/goliatone/go-jsonform/pkg/validator"
)

const dateHelp = "YYYY-MM-DD"

// Set is the terminal implementation of every form control.
type Set struct {
	driver   PromptDriver
	theme    Theme
	pageSize int
	inspect  FileInspector
}

// New builds a control set backed by survey unless another driver is given.
func New(opts ...Option) *Set {
	s := &Set{
		theme:   DefaultTheme,
		inspect: InspectFile,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// NewRegistry returns a registry holding a terminal control for every
// form.Control kind.
func NewRegistry(opts ...Option) (*controls.Registry, error) {
	reg := controls.NewRegistry()
	if err := New(opts...).Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds the set's controls to reg.
func (s *Set) Register(reg *controls.Registry) error {
	if reg == nil {
		return fmt.Errorf("tui: registry is required")
	}
	entries := map[form.Control]controls.ControlFunc{
		form.ControlInput:        s.input,
		form.ControlPassword:     s.password,
		form.ControlTextarea:     s.textarea,
		form.ControlSelect:       s.selectOne,
		form.ControlSearchSelect: s.searchSelect,
		form.ControlCheckbox:     s.confirm,
		form.ControlSwitch:       s.confirm,
		form.ControlDatePicker:   s.date,
		form.ControlFileUpload:   s.file,
		form.ControlHidden:       s.hidden,
	}
	for kind, control := range entries {
		if err := reg.Register(kind, control); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) input(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	convert := func(text string) any {
		if b.InputType == string(form.KindNumber) {
			if n, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
				return n
			}
		}
		return text
	}
	answer, err := s.driver.Input(ctx, InputConfig{
		Message:   s.message(b),
		Default:   validator.ToString(b.Value),
		Help:      s.help(b, ""),
		Validator: s.liveCheck(b, convert),
	})
	if err != nil {
		return err
	}
	return commit(b, convert(answer))
}

func (s *Set) password(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	answer, err := s.driver.Password(ctx, InputConfig{
		Message:   s.message(b),
		Help:      s.help(b, ""),
		Validator: s.liveCheck(b, nil),
	})
	if err != nil {
		return err
	}
	return commit(b, answer)
}

func (s *Set) textarea(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	answer, err := s.driver.TextArea(ctx, TextAreaConfig{
		Message:   s.message(b),
		Default:   validator.ToString(b.Value),
		Help:      s.help(b, ""),
		Validator: s.liveCheck(b, nil),
	})
	if err != nil {
		return err
	}
	return commit(b, answer)
}

func (s *Set) selectOne(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	if len(b.Options) == 0 {
		return fmt.Errorf("tui: field %q has no options", b.Name)
	}
	labels, values := splitChoices(b.Options)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.message(b),
		Options:      labels,
		DefaultIndex: slices.Index(values, validator.ToString(b.Value)),
		Help:         s.help(b, ""),
		PageSize:     s.pageSize,
	})
	if err != nil {
		return err
	}
	var value any = ""
	if idx >= 0 && idx < len(values) {
		value = values[idx]
	}
	return commit(b, value)
}

func (s *Set) searchSelect(ctx context.Context, b form.Binding) error {
	if !b.Multiple {
		return s.selectOne(ctx, b)
	}
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	if len(b.Options) == 0 {
		return fmt.Errorf("tui: field %q has no options", b.Name)
	}
	labels, values := splitChoices(b.Options)
	indices, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  s.message(b),
		Options:  labels,
		Defaults: indicesOf(values, validator.ToStrings(b.Value)),
		Help:     s.help(b, ""),
		PageSize: s.pageSize,
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(values) {
			selected = append(selected, values[idx])
		}
	}
	return commit(b, selected)
}

func (s *Set) confirm(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	current, _ := b.Value.(bool)
	answer, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: s.message(b),
		Default: current,
		Help:    s.help(b, ""),
	})
	if err != nil {
		return err
	}
	return commit(b, answer)
}

func (s *Set) date(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	current := validator.ToString(b.Value)
	if t, ok := validator.ParseDate(b.Value); ok {
		current = t.Format("2006-01-02")
	}
	answer, err := s.driver.Input(ctx, InputConfig{
		Message:   s.message(b),
		Default:   current,
		Help:      s.help(b, dateHelp),
		Validator: s.liveCheck(b, nil),
	})
	if err != nil {
		return err
	}
	return commit(b, strings.TrimSpace(answer))
}

// file asks for a comma separated list of paths and stores the inspected
// files. Unreadable paths are reported and asked again.
func (s *Set) file(ctx context.Context, b form.Binding) error {
	if skip, err := s.prelude(ctx, b); skip || err != nil {
		return err
	}
	help := "Comma separated file paths"
	if b.Accept != "" {
		help += " (" + b.Accept + ")"
	}
	for {
		answer, err := s.driver.Input(ctx, InputConfig{
			Message: s.message(b),
			Help:    s.help(b, help),
		})
		if err != nil {
			return err
		}
		files, err := inspectAll(s.inspect, splitPaths(answer))
		if err != nil {
			if infoErr := s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error()); infoErr != nil {
				return infoErr
			}
			continue
		}
		return commit(b, files)
	}
}

func (s *Set) hidden(context.Context, form.Binding) error {
	return nil
}

// prelude prints the pending error and reports whether the field should be
// skipped.
func (s *Set) prelude(ctx context.Context, b form.Binding) (bool, error) {
	if b.Disabled {
		return true, nil
	}
	if b.Error != "" {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+b.Error); err != nil {
			return true, err
		}
	}
	return false, nil
}

func (s *Set) message(b form.Binding) string {
	label := strings.TrimSpace(b.Label)
	if label == "" {
		label = b.Name
	}
	if b.Required {
		label += s.theme.RequiredSuffix
	}
	return label
}

func (s *Set) help(b form.Binding, fallback string) string {
	switch {
	case strings.TrimSpace(b.HelperText) != "":
		return b.HelperText
	case strings.TrimSpace(b.Placeholder) != "":
		return b.Placeholder
	default:
		return fallback
	}
}

// liveCheck lets survey re-ask until the field's rules pass.
func (s *Set) liveCheck(b form.Binding, convert func(string) any) func(string) error {
	return func(text string) error {
		var value any = text
		if convert != nil {
			value = convert(text)
		}
		if err := b.OnChange(value); err != nil {
			return err
		}
		msg, err := b.OnBlur()
		if err != nil {
			return err
		}
		if msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func commit(b form.Binding, value any) error {
	if b.OnChange == nil {
		return fmt.Errorf("tui: field %q has no change handler", b.Name)
	}
	if err := b.OnChange(value); err != nil {
		return err
	}
	if b.OnBlur != nil {
		if _, err := b.OnBlur(); err != nil {
			return err
		}
	}
	return nil
}

func splitChoices(choices []form.Choice) (labels, values []string) {
	labels = make([]string, len(choices))
	values = make([]string, len(choices))
	for i, choice := range choices {
		labels[i] = choice.Label
		if labels[i] == "" {
			labels[i] = choice.Value
		}
		values[i] = choice.Value
	}
	return labels, values
}
