package openapi

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-jsonform/pkg/form"
	"github.com/goliatone/go-jsonform/pkg/validator"
)

// textareaThreshold is the maxLength above which strings get a textarea.
const textareaThreshold = 255

// Fields maps the operation's request body onto form fields, one per
// top level property. Read-only properties, nested objects and arrays
// without enumerated items are skipped.
func Fields(op Operation) ([]form.Field, error) {
	if op.Body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body", op.ID)
	}
	if op.Body.Type != "" && op.Body.Type != "object" {
		return nil, fmt.Errorf("openapi: operation %q request body is %s, not object", op.ID, op.Body.Type)
	}

	required := make(map[string]bool, len(op.Body.Required))
	for _, name := range op.Body.Required {
		required[name] = true
	}

	fields := make([]form.Field, 0, len(op.Body.Properties))
	for _, prop := range op.Body.Properties {
		field, ok, err := fieldFor(prop.Name, prop.Schema, required[prop.Name])
		if err != nil {
			return nil, fmt.Errorf("openapi: operation %q property %q: %w", op.ID, prop.Name, err)
		}
		if ok {
			fields = append(fields, field)
		}
	}
	return fields, nil
}

// LoadFields loads src, finds operationID and maps its request body.
func LoadFields(ctx context.Context, loader *Loader, src Source, operationID string) (Operation, []form.Field, error) {
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return Operation{}, nil, err
	}
	op, err := FindOperation(ctx, doc, operationID)
	if err != nil {
		return Operation{}, nil, err
	}
	fields, err := Fields(op)
	if err != nil {
		return Operation{}, nil, err
	}
	return op, fields, nil
}

func fieldFor(name string, s Schema, required bool) (form.Field, bool, error) {
	if s.ReadOnly {
		return form.Field{}, false, nil
	}
	kind, ok := inferKind(s)
	if !ok {
		return form.Field{}, false, nil
	}

	field := form.Field{
		Name:         name,
		Type:         kind,
		Label:        labelFor(name, s),
		HelperText:   s.Description,
		Required:     required,
		DefaultValue: s.Default,
		ColSpan:      s.Span,
	}

	switch kind {
	case form.KindSelect, form.KindSearchSelect:
		field.Options = choices(s.Enum)
		field.Validator = validator.Select().ShouldBeIn(enumStrings(s.Enum))
	case form.KindMultiSelect, form.KindMultiSearchSelect:
		enum := s.Enum
		if s.Items != nil && len(s.Items.Enum) > 0 {
			enum = s.Items.Enum
		}
		field.Options = choices(enum)
		rules := validator.Array().ShouldBeIn(enumStrings(enum))
		if s.MinItems != nil {
			rules.MinItems(*s.MinItems)
		}
		if s.MaxItems != nil {
			rules.MaxItems(*s.MaxItems)
		}
		field.Validator = rules
	case form.KindNumber:
		field.Min, field.Max = s.Minimum, s.Maximum
		rules := validator.Number()
		if s.Minimum != nil {
			rules.Min(*s.Minimum)
		}
		if s.Maximum != nil {
			rules.Max(*s.Maximum)
		}
		if s.Type == "integer" {
			rules.Integer()
			step := 1.0
			field.Step = &step
		}
		field.Validator = rules
	case form.KindEmail:
		field.Validator = validator.Email()
	case form.KindURL:
		field.Validator = validator.URL()
	case form.KindDate:
		field.Validator = validator.Date().ValidDate()
	case form.KindFile:
		rules := validator.Files()
		if s.Type != "array" {
			rules.MaxFiles(1)
		}
		field.Validator = rules
	case form.KindCheckbox, form.KindSwitch:
	default:
		validation, err := stringValidation(s)
		if err != nil {
			return form.Field{}, false, err
		}
		field.Validation = validation
	}
	return field, true, nil
}

func inferKind(s Schema) (form.Kind, bool) {
	if s.Kind != "" {
		kind, _ := form.ParseKind(s.Kind)
		return kind, true
	}

	switch s.Type {
	case "integer", "number":
		return form.KindNumber, true
	case "boolean":
		return form.KindCheckbox, true
	case "array":
		if s.Items == nil {
			return "", false
		}
		if s.Items.Format == "binary" {
			return form.KindFile, true
		}
		if len(s.Items.Enum) > 0 {
			return form.KindMultiSelect, true
		}
		return "", false
	case "object":
		return "", false
	}

	if len(s.Enum) > 0 {
		return form.KindSelect, true
	}
	switch strings.ToLower(s.Format) {
	case "email":
		return form.KindEmail, true
	case "password":
		return form.KindPassword, true
	case "uri", "url":
		return form.KindURL, true
	case "date", "date-time":
		return form.KindDate, true
	case "binary":
		return form.KindFile, true
	case "tel", "phone":
		return form.KindTel, true
	}
	if s.MaxLength != nil && *s.MaxLength > textareaThreshold {
		return form.KindTextarea, true
	}
	return form.KindText, true
}

func stringValidation(s Schema) (*form.Validation, error) {
	if s.MinLength == nil && s.MaxLength == nil && s.Pattern == "" {
		return nil, nil
	}
	v := &form.Validation{MinLength: s.MinLength, MaxLength: s.MaxLength}
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		v.Pattern = re
	}
	return v, nil
}

func choices(enum []any) []form.Choice {
	out := make([]form.Choice, 0, len(enum))
	for _, value := range enum {
		s := validator.ToString(value)
		out = append(out, form.Choice{Label: humanize(s), Value: s})
	}
	return out
}

func enumStrings(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		out = append(out, validator.ToString(value))
	}
	return out
}

func labelFor(name string, s Schema) string {
	if title := strings.TrimSpace(s.Title); title != "" {
		return title
	}
	return humanize(name)
}

// humanize turns snake_case, kebab-case and camelCase identifiers into a
// sentence cased label.
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0:
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return name
	}
	label := strings.Join(words, " ")
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
