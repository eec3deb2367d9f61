package validator

import (
	"slices"
	"strings"
)

// SelectRules builds rules for single choice fields.
type SelectRules struct {
	core[*SelectRules]
}

// Select starts a single choice rule builder.
func Select() *SelectRules {
	s := &SelectRules{}
	s.core = newCore(s)
	return s
}

// ShouldBeIn restricts the selection to options.
func (s *SelectRules) ShouldBeIn(options []string, message ...string) *SelectRules {
	allowed := slices.Clone(options)
	msg := messageOr(message, "Please select a valid option")
	return s.check("shouldBeIn", func(value any) (bool, string) {
		if IsEmpty(value) || slices.Contains(allowed, ToString(value)) {
			return true, ""
		}
		return false, msg
	})
}

// NotEmpty requires a selection.
func (s *SelectRules) NotEmpty(message ...string) *SelectRules {
	msg := messageOr(message, "Please select an option")
	return s.check("notEmpty", func(value any) (bool, string) {
		if strings.TrimSpace(ToString(value)) == "" {
			return false, msg
		}
		return true, ""
	})
}

// Compile returns the accumulated rules.
func (s *SelectRules) Compile() RuleSet {
	return s.compile()
}

// BooleanRules builds rules for checkbox and switch fields.
type BooleanRules struct {
	core[*BooleanRules]
}

// Boolean starts a boolean rule builder.
func Boolean() *BooleanRules {
	b := &BooleanRules{}
	b.core = newCore(b)
	return b
}

// MustBeTrue only accepts a true value.
func (b *BooleanRules) MustBeTrue(message ...string) *BooleanRules {
	msg := messageOr(message, "This must be checked")
	return b.check("mustBeTrue", func(value any) (bool, string) {
		switch v := value.(type) {
		case bool:
			if v {
				return true, ""
			}
		case string:
			if strings.EqualFold(strings.TrimSpace(v), "true") {
				return true, ""
			}
		}
		return false, msg
	})
}

// Compile returns the accumulated rules.
func (b *BooleanRules) Compile() RuleSet {
	return b.compile()
}
