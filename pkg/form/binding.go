package form

const defaultTextareaRows = 3

// Binding is everything a control needs to present one field. Controls
// report edits through OnChange and focus loss through OnBlur and never
// touch form state directly.
type Binding struct {
	Name        string
	Kind        Kind
	Control     Control
	Label       string
	HelperText  string
	Placeholder string
	Error       string
	Disabled    bool
	Required    bool
	Value       any
	OnChange    func(value any) error
	OnBlur      func() (string, error)

	Multiple  bool
	InputType string
	Options   []Choice
	Rows      int
	Min       *float64
	Max       *float64
	Step      *float64
	Accept    string
	Span      int
}

// Bindings returns one binding per field in declaration order. Hidden fields
// are included so callers can carry their values; they bind to ControlHidden.
func (f *Form) Bindings() []Binding {
	if f == nil {
		return nil
	}
	out := make([]Binding, 0, len(f.fields))
	for _, field := range f.fields {
		out = append(out, f.binding(field))
	}
	return out
}

// Binding returns the binding for the named field.
func (f *Form) Binding(name string) (Binding, bool) {
	field, ok := f.Field(name)
	if !ok {
		return Binding{}, false
	}
	return f.binding(field), true
}

func (f *Form) binding(field Field) Binding {
	target := Dispatch(field.Type)
	value, _ := f.state.value(field.Name)
	name := field.Name

	b := Binding{
		Name:        name,
		Kind:        field.Type,
		Control:     target.Control,
		Label:       field.Label,
		HelperText:  field.HelperText,
		Placeholder: field.Placeholder,
		Error:       f.state.errors[name],
		Disabled:    field.Disabled,
		Required:    EffectiveRules(field).Required != "",
		Value:       value,
		OnChange:    func(v any) error { return f.Change(name, v) },
		OnBlur:      func() (string, error) { return f.Blur(name) },
		Multiple:    target.Multiple,
		InputType:   target.InputType,
		Span:        f.span(field),
	}

	switch target.Control {
	case ControlSelect, ControlSearchSelect:
		b.Options = append([]Choice(nil), field.Options...)
	case ControlTextarea:
		b.Rows = field.Rows
		if b.Rows <= 0 {
			b.Rows = defaultTextareaRows
		}
	case ControlInput, ControlDatePicker:
		b.Min, b.Max, b.Step = field.Min, field.Max, field.Step
	case ControlFileUpload:
		b.Accept = field.Accept
	}
	return b
}
