package validator

import (
	"regexp"
	"slices"
)

// Default messages shared by every builder kind.
const (
	DefaultRequiredMessage = "This field is required"
	DefaultInvalidMessage  = "Invalid value"
	InvalidDateMessage     = "Invalid date"
)

// Check is a compiled named check. It reports whether value passes and, when
// it does not, the message to surface for the field.
type Check func(value any) (ok bool, message string)

// Predicate is the caller supplied function registered through Custom. A
// failing predicate may return its own message; an empty message falls back
// to the one given to Custom.
type Predicate func(value any) (ok bool, message string)

// LengthRule bounds the character count of a value.
type LengthRule struct {
	Value   int
	Message string
}

// BoundRule bounds a numeric value (inclusive).
type BoundRule struct {
	Value   float64
	Message string
}

// PatternRule requires a value to match a regular expression.
type PatternRule struct {
	Value   *regexp.Regexp
	Message string
}

// RuleSet is the compiled, kind-agnostic validation contract for a field. A
// zero RuleSet accepts every value.
type RuleSet struct {
	Required  string
	MinLength *LengthRule
	MaxLength *LengthRule
	Min       *BoundRule
	Max       *BoundRule
	Pattern   *PatternRule
	Validate  *Checks
}

// Builder is implemented by every kind-specific rule builder.
type Builder interface {
	Compile() RuleSet
}

// Checks is an insertion ordered mapping of named checks. Setting an existing
// name replaces its check and keeps the original position.
type Checks struct {
	names []string
	fns   map[string]Check
}

// NewChecks returns an empty mapping.
func NewChecks() *Checks {
	return &Checks{fns: make(map[string]Check)}
}

// Set registers fn under name, replacing any previous check with that name.
func (c *Checks) Set(name string, fn Check) {
	if c.fns == nil {
		c.fns = make(map[string]Check)
	}
	if _, exists := c.fns[name]; !exists {
		c.names = append(c.names, name)
	}
	c.fns[name] = fn
}

// Get returns the check registered under name.
func (c *Checks) Get(name string) (Check, bool) {
	if c == nil {
		return nil, false
	}
	fn, ok := c.fns[name]
	return fn, ok
}

// Names lists check names in registration order.
func (c *Checks) Names() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.names)
}

// Len reports the number of registered checks.
func (c *Checks) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Clone returns an independent copy.
func (c *Checks) Clone() *Checks {
	if c == nil {
		return nil
	}
	out := &Checks{
		names: slices.Clone(c.names),
		fns:   make(map[string]Check, len(c.fns)),
	}
	for name, fn := range c.fns {
		out.fns[name] = fn
	}
	return out
}

// Evaluate applies the rule set to value and returns the first failing
// message. Bounds and pattern are skipped for empty values; presence is
// governed by Required alone.
func (r RuleSet) Evaluate(value any) (string, bool) {
	empty := IsEmpty(value)
	if r.Required != "" && empty {
		return r.Required, false
	}

	if !empty {
		if r.MinLength != nil {
			if n, ok := lengthOf(value); ok && n < r.MinLength.Value {
				return r.MinLength.Message, false
			}
		}
		if r.MaxLength != nil {
			if n, ok := lengthOf(value); ok && n > r.MaxLength.Value {
				return r.MaxLength.Message, false
			}
		}
		// Bounds only constrain numbers; anything else is never out of range.
		if num, ok := ToFloat(value); ok {
			if r.Min != nil && num < r.Min.Value {
				return r.Min.Message, false
			}
			if r.Max != nil && num > r.Max.Value {
				return r.Max.Message, false
			}
		}
		if r.Pattern != nil && r.Pattern.Value != nil {
			if !r.Pattern.Value.MatchString(ToString(value)) {
				return r.Pattern.Message, false
			}
		}
	}

	if r.Validate != nil {
		for _, name := range r.Validate.names {
			fn := r.Validate.fns[name]
			if fn == nil {
				continue
			}
			if ok, message := fn(value); !ok {
				if message == "" {
					message = DefaultInvalidMessage
				}
				return message, false
			}
		}
	}
	return "", true
}
