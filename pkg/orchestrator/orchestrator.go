package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-jsonform/pkg/controls"
	"github.com/goliatone/go-jsonform/pkg/controls/tui"
	"github.com/goliatone/go-jsonform/pkg/form"
	pkgopenapi "github.com/goliatone/go-jsonform/pkg/openapi"
	"github.com/goliatone/go-jsonform/pkg/uischema"
)

const defaultHTTPTimeout = 30 * time.Second

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader *pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithFormsFS supplies an fs.FS holding form documents. Pass nil to disable
// the embedded samples.
func WithFormsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.formsFS = fsys
		o.formsSpecified = true
	}
}

// WithRegistry injects the control registry used by Run. Without one Run
// falls back to the terminal controls.
func WithRegistry(registry *controls.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLogger routes pipeline events, and the events of every built form, to
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFormOptions appends options applied to every built form.
func WithFormOptions(opts ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, opts...)
	}
}

// WithRunOptions appends options passed to controls.Run.
func WithRunOptions(opts ...controls.RunOption) Option {
	return func(o *Orchestrator) {
		o.runOptions = append(o.runOptions, opts...)
	}
}

// Orchestrator turns a form document or an OpenAPI operation into a form and
// drives it through a control registry.
type Orchestrator struct {
	loader         *pkgopenapi.Loader
	formsFS        fs.FS
	formsSpecified bool
	store          *uischema.Store
	registry       *controls.Registry
	logger         *slog.Logger
	formOptions    []form.Option
	runOptions     []controls.RunOption
	initialiseErr  error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = pkgopenapi.NewLoader(pkgopenapi.WithHTTPFallback(defaultHTTPTimeout))
	}
	if !o.formsSpecified {
		o.formsFS = uischema.EmbeddedFS()
	}
	if o.formsFS == nil {
		return
	}
	store, err := uischema.LoadFS(o.formsFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load form documents: %w", err)
		return
	}
	o.store = store
}

// Request selects the schema a form is built from. Exactly one of FormID and
// OperationID must be set.
type Request struct {
	// FormID names a document in the configured forms filesystem.
	FormID string

	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader.
	Document *pkgopenapi.Document

	// OperationID selects the OpenAPI operation whose request body becomes
	// the form.
	OperationID string

	// Values seeds the form, taking precedence over field defaults.
	Values form.Values

	// Options are applied after the orchestrator's form options.
	Options []form.Option
}

// Plan is a built form plus the descriptive text of its schema.
type Plan struct {
	Title       string
	Description string
	Form        *form.Form
}

// Forms lists the ids of the available form documents.
func (o *Orchestrator) Forms() []string {
	if o == nil || o.store == nil {
		return nil
	}
	return o.store.IDs()
}

// Build resolves the request's schema and constructs the form.
func (o *Orchestrator) Build(ctx context.Context, req Request) (Plan, error) {
	if o == nil {
		return Plan{}, errors.New("orchestrator: orchestrator is nil")
	}
	if ctx == nil {
		return Plan{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Plan{}, err
	}

	formID := strings.TrimSpace(req.FormID)
	operationID := strings.TrimSpace(req.OperationID)
	switch {
	case formID != "" && operationID != "":
		return Plan{}, errors.New("orchestrator: form id and operation id are mutually exclusive")
	case formID != "":
		return o.buildDocument(formID, req)
	case operationID != "":
		return o.buildOperation(ctx, operationID, req)
	default:
		return Plan{}, errors.New("orchestrator: form id or operation id is required")
	}
}

// Run builds the form, presents it through the control registry and returns
// the submitted values.
func (o *Orchestrator) Run(ctx context.Context, req Request) (form.Values, error) {
	var submitted form.Values
	capture := form.WithSubmitHandler(func(values form.Values) error {
		submitted = values
		return nil
	})
	req.Options = append(append([]form.Option(nil), req.Options...), capture)

	plan, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	registry, err := o.controlRegistry()
	if err != nil {
		return nil, err
	}

	logger := o.logger.With(slog.String("form_id", plan.Form.ID()))
	logger.Debug("form started", slog.String("title", plan.Title), slog.Int("fields", len(plan.Form.Fields())))
	if err := controls.Run(ctx, plan.Form, registry, o.runOptions...); err != nil {
		if errors.Is(err, controls.ErrCancelled) {
			logger.Info("form cancelled")
		}
		return nil, err
	}
	logger.Info("form submitted")
	return submitted, nil
}

func (o *Orchestrator) controlRegistry() (*controls.Registry, error) {
	if o.registry != nil {
		return o.registry, nil
	}
	registry, err := tui.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: terminal controls: %w", err)
	}
	o.registry = registry
	return registry, nil
}

func (o *Orchestrator) buildDocument(id string, req Request) (Plan, error) {
	if o.store == nil {
		return Plan{}, errors.New("orchestrator: no form documents configured")
	}
	doc, ok := o.store.Form(id)
	if !ok {
		return Plan{}, fmt.Errorf("orchestrator: form %q not found", id)
	}
	built, err := doc.Build(o.options(req)...)
	if err != nil {
		return Plan{}, fmt.Errorf("orchestrator: %w", err)
	}
	return Plan{Title: doc.Title, Description: doc.Description, Form: built}, nil
}

func (o *Orchestrator) buildOperation(ctx context.Context, id string, req Request) (Plan, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Plan{}, err
	}
	op, err := pkgopenapi.FindOperation(ctx, doc, id)
	if err != nil {
		return Plan{}, fmt.Errorf("orchestrator: %w", err)
	}
	fields, err := pkgopenapi.Fields(op)
	if err != nil {
		return Plan{}, fmt.Errorf("orchestrator: %w", err)
	}
	built, err := form.New(fields, o.options(req)...)
	if err != nil {
		return Plan{}, fmt.Errorf("orchestrator: build form for %q: %w", id, err)
	}
	title := op.Summary
	if title == "" {
		title = op.ID
	}
	return Plan{Title: title, Description: op.Description, Form: built}, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) options(req Request) []form.Option {
	opts := []form.Option{form.WithLogger(o.logger)}
	opts = append(opts, o.formOptions...)
	if len(req.Values) > 0 {
		opts = append(opts, form.WithDefaultValues(req.Values))
	}
	return append(opts, req.Options...)
}
