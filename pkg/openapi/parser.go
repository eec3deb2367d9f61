package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-jsonform/pkg/validator"
)

const (
	// ExtensionPrefix namespaces the vendor extensions read from schemas.
	ExtensionPrefix = "x-jsonform"

	kindExtension  = ExtensionPrefix + "-kind"
	spanExtension  = ExtensionPrefix + "-span"
	orderExtension = "x-order"
)

// KnownExtensions lists the x-jsonform extensions understood by Fields.
func KnownExtensions() []string {
	return []string{kindExtension, spanExtension}
}

// Operation is the subset of an OpenAPI operation a form needs.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// Body is the request body schema; nil when the operation takes none.
	Body *Schema
}

// Schema is a flattened view of a kin-openapi schema.
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Default     any
	Enum        []any
	Required    []string
	Properties  []Property
	Items       *Schema
	MinLength   *int
	MaxLength   *int
	Minimum     *float64
	Maximum     *float64
	MinItems    *int
	MaxItems    *int
	Pattern     string
	ReadOnly    bool
	// Kind overrides the inferred form kind (x-jsonform-kind).
	Kind string
	// Span is the requested column span (x-jsonform-span).
	Span int
	// Extensions holds every x-jsonform prefixed extension as declared.
	Extensions map[string]any
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema Schema
	order  float64
	hasPos bool
}

// ParserOption configures Operations.
type ParserOption func(*parser)

// WithValidation toggles full document validation before extraction.
func WithValidation(enabled bool) ParserOption {
	return func(p *parser) {
		p.validate = enabled
	}
}

type parser struct {
	validate bool
}

// Operations parses doc and returns its operations keyed by operationId.
// Operations without an id are keyed "method:path" in lower case method.
func Operations(ctx context.Context, doc Document, opts ...ParserOption) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	p := &parser{validate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			op := Operation{
				ID:          operation.OperationID,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     operation.Summary,
				Description: operation.Description,
				Body:        requestSchema(operation.RequestBody),
			}
			if op.ID == "" {
				op.ID = strings.ToLower(method) + ":" + path
			}
			operations[op.ID] = op
		}
	}
	return operations, nil
}

// FindOperation parses doc and returns the operation named id.
func FindOperation(ctx context.Context, doc Document, id string, opts ...ParserOption) (Operation, error) {
	operations, err := Operations(ctx, doc, opts...)
	if err != nil {
		return Operation{}, err
	}
	op, ok := operations[strings.TrimSpace(id)]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

// ErrOperationNotFound is returned when a document lacks the requested operation.
var ErrOperationNotFound = errors.New("openapi: operation not found")

func requestSchema(body *openapi3.RequestBodyRef) *Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			schema := convertSchema(mt.Schema, nil)
			return &schema
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			schema := convertSchema(mt.Schema, nil)
			return &schema
		}
	}
	return nil
}

// convertSchema flattens ref. Schemas already on the current path are
// returned without children so recursive references terminate.
func convertSchema(ref *openapi3.SchemaRef, path map[*openapi3.Schema]bool) Schema {
	if ref == nil || ref.Value == nil {
		return Schema{}
	}
	src := ref.Value
	if path == nil {
		path = make(map[*openapi3.Schema]bool)
	}
	cyclic := path[src]
	path[src] = true
	defer func() {
		if !cyclic {
			delete(path, src)
		}
	}()
	schema := Schema{
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Pattern:     src.Pattern,
		ReadOnly:    src.ReadOnly,
		Minimum:     src.Min,
		Maximum:     src.Max,
		Kind:        validator.ToString(src.Extensions[kindExtension]),
	}
	if span, ok := validator.ToFloat(src.Extensions[spanExtension]); ok {
		schema.Span = int(span)
	}
	for key, value := range src.Extensions {
		if strings.HasPrefix(key, ExtensionPrefix) {
			if schema.Extensions == nil {
				schema.Extensions = make(map[string]any)
			}
			schema.Extensions[key] = value
		}
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if src.MinLength > 0 {
		n := int(src.MinLength)
		schema.MinLength = &n
	}
	if src.MaxLength != nil {
		n := int(*src.MaxLength)
		schema.MaxLength = &n
	}
	if src.MinItems > 0 {
		n := int(src.MinItems)
		schema.MinItems = &n
	}
	if src.MaxItems != nil {
		n := int(*src.MaxItems)
		schema.MaxItems = &n
	}
	if cyclic {
		return schema
	}
	if src.Items != nil {
		items := convertSchema(src.Items, path)
		schema.Items = &items
	}
	for name, property := range src.Properties {
		prop := Property{Name: name, Schema: convertSchema(property, path)}
		if property != nil && property.Value != nil {
			prop.order, prop.hasPos = validator.ToFloat(property.Value.Extensions[orderExtension])
		}
		schema.Properties = append(schema.Properties, prop)
	}
	sortProperties(schema.Properties)
	return schema
}

// sortProperties places properties with an x-order first, ascending, then
// the rest by name.
func sortProperties(props []Property) {
	sort.SliceStable(props, func(i, j int) bool {
		a, b := props[i], props[j]
		switch {
		case a.hasPos && b.hasPos && a.order != b.order:
			return a.order < b.order
		case a.hasPos != b.hasPos:
			return a.hasPos
		default:
			return a.Name < b.Name
		}
	})
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	for _, v := range values {
		if v != openapi3.TypeNull {
			return v
		}
	}
	return values[0]
}
