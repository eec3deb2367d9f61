package uischema

import (
	"fmt"
	"regexp"

	"github.com/goliatone/go-jsonform/pkg/form"
)

// FormFields converts the document into form fields. peer resolves values
// of other fields for rules such as confirmMatch; it may be nil when no
// rule needs it.
func (d Document) FormFields(peer PeerLookup) ([]form.Field, error) {
	fields := make([]form.Field, 0, len(d.Fields))
	for _, cfg := range d.Fields {
		field, err := cfg.formField(peer)
		if err != nil {
			return nil, fmt.Errorf("uischema: form %q field %q: %w", d.ID, cfg.Name, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// Build creates a form from the document. The document's column count is
// applied before opts, so callers may override it.
func (d Document) Build(opts ...form.Option) (*form.Form, error) {
	var built *form.Form
	peer := func(name string) any {
		if built == nil {
			return nil
		}
		v, _ := built.Value(name)
		return v
	}

	fields, err := d.FormFields(peer)
	if err != nil {
		return nil, err
	}

	all := append([]form.Option{form.WithColumns(d.Columns)}, opts...)
	built, err = form.New(fields, all...)
	if err != nil {
		return nil, fmt.Errorf("uischema: build form %q: %w", d.ID, err)
	}
	return built, nil
}

func (cfg FieldConfig) formField(peer PeerLookup) (form.Field, error) {
	// Unknown kinds stay as declared; dispatch sends them to the text input.
	kind := form.KindText
	if cfg.Type != "" {
		kind, _ = form.ParseKind(cfg.Type)
	}

	field := form.Field{
		Name:         cfg.Name,
		Type:         kind,
		Label:        cfg.Label,
		HelperText:   cfg.HelperText,
		Placeholder:  cfg.Placeholder,
		Required:     cfg.Required,
		Disabled:     cfg.Disabled,
		DefaultValue: cfg.Default,
		Rows:         cfg.Rows,
		Min:          cfg.Min,
		Max:          cfg.Max,
		Step:         cfg.Step,
		Accept:       cfg.Accept,
		ColSpan:      cfg.Span,
	}
	for _, opt := range cfg.Options {
		field.Options = append(field.Options, form.Choice{Label: opt.Label, Value: opt.Value})
	}

	if len(cfg.Rules) > 0 {
		builder, err := CompileRules(kind, cfg.Rules, peer)
		if err != nil {
			return form.Field{}, err
		}
		field.Validator = builder
		return field, nil
	}

	if v := cfg.Validation; v != nil {
		validation := &form.Validation{
			MinLength: v.MinLength,
			MaxLength: v.MaxLength,
			Min:       v.Min,
			Max:       v.Max,
			Message:   v.Message,
		}
		if v.Pattern != "" {
			re, err := regexp.Compile(v.Pattern)
			if err != nil {
				return form.Field{}, fmt.Errorf("validation pattern: %w", err)
			}
			validation.Pattern = re
		}
		field.Validation = validation
	}
	return field, nil
}
