// Package jsonform is the top level entry point for building schema driven
// forms. It re-exports the handful of types most callers need and wraps the
// orchestrator for one-call usage.
package jsonform

import (
	"context"

	"github.com/goliatone/go-jsonform/pkg/form"
	pkgopenapi "github.com/goliatone/go-jsonform/pkg/openapi"
	"github.com/goliatone/go-jsonform/pkg/orchestrator"
)

// Field describes one input of a form.
type Field = form.Field

// Values is the value map handed to submit handlers.
type Values = form.Values

// Request selects the schema a form is built from.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// New builds a form over fields.
func New(fields []Field, options ...form.Option) (*form.Form, error) {
	return form.New(fields, options...)
}

// RunForm presents a bundled or configured form document and returns the
// submitted values.
func RunForm(ctx context.Context, formID string, options ...orchestrator.Option) (Values, error) {
	return orchestrator.New(options...).Run(ctx, orchestrator.Request{FormID: formID})
}

// RunOperation loads the OpenAPI source, derives a form from the request
// body of operationID and returns the submitted values.
func RunOperation(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) (Values, error) {
	return orchestrator.New(options...).Run(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
	})
}
