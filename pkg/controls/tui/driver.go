package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-jsonform/pkg/controls"
)

// InputConfig describes a single line answer. Validator runs when the answer
// is submitted so rule messages show inline.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig describes a choice list. DefaultIndex applies to single
// choice, Defaults to multiple choice; out of range indices are ignored.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int
	Help         string
	PageSize     int
}

type TextAreaConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// PromptDriver is the terminal surface the controls talk to. Select style
// answers come back as indices into the options they were given.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the survey backed driver. Info messages go to out,
// or stdout when out is nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

// ask runs one survey prompt into answer. A Ctrl-C becomes controls.ErrCancelled.
func ask(ctx context.Context, prompt survey.Prompt, answer any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapInterrupt(survey.AskOne(prompt, answer, opts...))
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var text string
	err := ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default},
		&text, validatorOpts(cfg.Validator)...)
	return text, err
}

// Password never echoes a default back to the terminal.
func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	var secret string
	err := ask(ctx, &survey.Password{Message: cfg.Message, Help: cfg.Help},
		&secret, validatorOpts(cfg.Validator)...)
	return secret, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var accepted bool
	err := ask(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &accepted)
	return accepted, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var label string
	if err := ask(ctx, prompt, &label); err != nil {
		return -1, err
	}
	return slices.Index(cfg.Options, label), nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if picked := labelsAt(cfg.Options, cfg.Defaults); len(picked) > 0 {
		prompt.Default = picked
	}
	var labels []string
	if err := ask(ctx, prompt, &labels); err != nil {
		return nil, err
	}
	return indicesOf(cfg.Options, labels), nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var text string
	err := ask(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default},
		&text, validatorOpts(cfg.Validator)...)
	return text, err
}

// Info prints a pending field error or a rejected file path before the next prompt.
func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// validatorOpts adapts a field rule check to survey's answer validator, which
// receives the raw answer as any.
func validatorOpts(check func(string) error) []survey.AskOpt {
	if check == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(ans any) error {
		text, _ := ans.(string)
		return check(text)
	})}
}

func mapInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return controls.ErrCancelled
	}
	return err
}

// indicesOf maps chosen labels back to option positions, in option order.
func indicesOf(options, chosen []string) []int {
	var out []int
	for i, option := range options {
		if slices.Contains(chosen, option) {
			out = append(out, i)
		}
	}
	return out
}

func labelsAt(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
