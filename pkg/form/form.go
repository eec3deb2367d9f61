package form

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-jsonform/pkg/validator"
)

// SubmitFunc receives a copy of every field value once validation passes.
type SubmitFunc func(values Values) error

// CancelFunc is invoked when the user dismisses the form.
type CancelFunc func()

// Option configures a Form.
type Option func(*Form)

// WithDefaultValues seeds field values by name. Entries take precedence over
// each field's DefaultValue.
func WithDefaultValues(values Values) Option {
	return func(f *Form) {
		f.defaults = cloneValues(values)
	}
}

// WithSubmitHandler registers the submit callback.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(f *Form) {
		f.onSubmit = fn
	}
}

// WithCancelHandler registers the cancel callback.
func WithCancelHandler(fn CancelFunc) Option {
	return func(f *Form) {
		f.onCancel = fn
	}
}

// WithColumns sets the grid column count. Values outside 1..3 are clamped.
func WithColumns(columns int) Option {
	return func(f *Form) {
		f.columns = clampColumns(columns)
	}
}

// WithLoading sets the initial loading flag.
func WithLoading(loading bool) Option {
	return func(f *Form) {
		f.loading = loading
	}
}

// WithLogger routes form events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSanitizer installs a sanitizer for free text values. Forms store values
// untouched unless one is set; StrictSanitizer strips markup.
func WithSanitizer(clean Sanitizer) Option {
	return func(f *Form) {
		f.sanitize = clean
	}
}

// Form owns the values and errors of one schema instance. It is driven from a
// single event loop and is not safe for concurrent use.
type Form struct {
	id       string
	fields   []Field
	index    map[string]int
	defaults Values
	state    *state
	onSubmit SubmitFunc
	onCancel CancelFunc
	columns  int
	loading  bool
	logger   *slog.Logger
	sanitize Sanitizer
}

// New builds a form over fields. Field names must be non-empty and unique.
func New(fields []Field, opts ...Option) (*Form, error) {
	f := &Form{
		id:      uuid.NewString(),
		fields:  make([]Field, 0, len(fields)),
		index:   make(map[string]int, len(fields)),
		columns: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, fmt.Errorf("form: field at position %d has no name", len(f.fields))
		}
		if _, exists := f.index[name]; exists {
			return nil, fmt.Errorf("form: duplicate field %q", name)
		}
		field.Name = name
		f.index[name] = len(f.fields)
		f.fields = append(f.fields, field)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	f.state = newState(f.seed())
	f.logger = f.logger.With(slog.String("form_id", f.id))
	return f, nil
}

func (f *Form) seed() Values {
	values := make(Values, len(f.fields))
	for _, field := range f.fields {
		if v, ok := f.defaults[field.Name]; ok {
			values[field.Name] = v
			continue
		}
		if field.DefaultValue != nil {
			values[field.Name] = field.DefaultValue
			continue
		}
		values[field.Name] = ""
	}
	return values
}

// ID returns the instance identifier attached to log records.
func (f *Form) ID() string {
	if f == nil {
		return ""
	}
	return f.id
}

// Fields returns the schema in declaration order.
func (f *Form) Fields() []Field {
	if f == nil {
		return nil
	}
	return append([]Field(nil), f.fields...)
}

// Field looks up a field by name.
func (f *Form) Field(name string) (Field, bool) {
	if f == nil {
		return Field{}, false
	}
	idx, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.fields[idx], true
}

// EffectiveRules resolves the rules for the named field.
func (f *Form) EffectiveRules(name string) (validator.RuleSet, error) {
	field, ok := f.Field(name)
	if !ok {
		return validator.RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return EffectiveRules(field), nil
}

// Value returns the current value of the named field.
func (f *Form) Value(name string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f.state.value(name)
}

// Values returns a copy of the current value map.
func (f *Form) Values() Values {
	if f == nil {
		return nil
	}
	return f.state.snapshot()
}

// Errors returns a copy of the current error map.
func (f *Form) Errors() map[string]string {
	if f == nil {
		return nil
	}
	return f.state.errorSnapshot()
}

// Error returns the current message for the named field, if any.
func (f *Form) Error(name string) string {
	if f == nil {
		return ""
	}
	return f.state.errors[name]
}

// Loading reports whether submit is currently disabled.
func (f *Form) Loading() bool {
	return f != nil && f.loading
}

// SetLoading toggles the loading flag supplied by the caller.
func (f *Form) SetLoading(loading bool) {
	if f == nil {
		return
	}
	f.loading = loading
}

// Change stores value for the named field. Free text goes through the
// sanitizer when one was installed with WithSanitizer. Change does not
// validate.
func (f *Form) Change(name string, value any) error {
	field, ok := f.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f.sanitize != nil && sanitizes(field.Type) {
		value = sanitizeValue(f.sanitize, value)
	}
	f.state.setValue(name, value)
	return nil
}

// Blur validates the named field and records or clears its error. It returns
// the failing message, or "" when the value is valid.
func (f *Form) Blur(name string) (string, error) {
	field, ok := f.Field(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	message := f.validateField(field)
	f.state.setError(name, message)
	return message, nil
}

// Validate evaluates every field and replaces the error map with the result.
func (f *Form) Validate() map[string]string {
	if f == nil {
		return nil
	}
	errs := make(map[string]string)
	for _, field := range f.fields {
		if message := f.validateField(field); message != "" {
			errs[field.Name] = message
		}
	}
	f.state.replaceErrors(errs)
	return errs
}

func (f *Form) validateField(field Field) string {
	value, _ := f.state.value(field.Name)
	message, ok := EffectiveRules(field).Evaluate(value)
	if ok {
		return ""
	}
	return message
}

// Submit validates all fields at once. Failures block submission and are
// returned as a *ValidationError. Otherwise the submit handler receives a
// copy of the full value map; state is left untouched either way.
func (f *Form) Submit() error {
	if f == nil {
		return fmt.Errorf("form: submit on nil form")
	}
	if f.loading {
		return ErrSubmitDisabled
	}

	errs := f.Validate()
	if len(errs) > 0 {
		f.logger.Debug("submit blocked", slog.Int("invalid_fields", len(errs)))
		return &ValidationError{Fields: cloneErrors(errs)}
	}

	f.logger.Debug("submit accepted", slog.Int("fields", len(f.fields)))
	if f.onSubmit == nil {
		return nil
	}
	if err := f.onSubmit(f.state.snapshot()); err != nil {
		return fmt.Errorf("form: submit handler: %w", err)
	}
	return nil
}

// Cancel invokes the cancel handler, if any.
func (f *Form) Cancel() {
	if f == nil {
		return
	}
	f.logger.Debug("form cancelled")
	if f.onCancel != nil {
		f.onCancel()
	}
}

// Reset restores seeded values and clears every error.
func (f *Form) Reset() {
	if f == nil {
		return
	}
	f.state = newState(f.seed())
}
