package form

import (
	"regexp"

	"github.com/goliatone/go-jsonform/pkg/validator"
)

// Choice is one option of a select style field.
type Choice struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Validation holds ad hoc constraints used when a field has no Validator.
// Message overrides the default message of every constraint it covers.
type Validation struct {
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
	Pattern   *regexp.Regexp
	Custom    validator.Predicate
	Message   string
}

// Field describes one entry of a form schema.
type Field struct {
	Name         string
	Type         Kind
	Label        string
	HelperText   string
	Placeholder  string
	Required     bool
	Disabled     bool
	DefaultValue any
	// Validation is ignored entirely when Validator is set.
	Validation *Validation
	Validator  validator.Builder
	Options    []Choice
	Rows       int
	Min        *float64
	Max        *float64
	Step       *float64
	Accept     string
	ColSpan    int
}
