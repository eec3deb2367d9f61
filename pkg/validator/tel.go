package validator

import (
	"fmt"
	"regexp"
)

// TelRules builds rules for phone numbers. Length checks count digits only,
// so formatting characters such as "+", "-" or spaces are ignored.
type TelRules struct {
	core[*TelRules]
	pattern *PatternRule
}

// Tel starts a phone number rule builder.
func Tel() *TelRules {
	t := &TelRules{}
	t.core = newCore(t)
	return t
}

// Length requires exactly n digits.
func (t *TelRules) Length(n int, message ...string) *TelRules {
	msg := messageOr(message, fmt.Sprintf("Phone number must have exactly %d digits", n))
	return t.check("length", digitCountCheck(msg, func(count int) bool { return count == n }))
}

// MinLength requires at least n digits.
func (t *TelRules) MinLength(n int, message ...string) *TelRules {
	msg := messageOr(message, fmt.Sprintf("Phone number must have at least %d digits", n))
	return t.check("minLength", digitCountCheck(msg, func(count int) bool { return count >= n }))
}

// MaxLength allows at most n digits.
func (t *TelRules) MaxLength(n int, message ...string) *TelRules {
	msg := messageOr(message, fmt.Sprintf("Phone number must have at most %d digits", n))
	return t.check("maxLength", digitCountCheck(msg, func(count int) bool { return count <= n }))
}

// ShouldMatch applies pattern to the raw, unstripped value.
func (t *TelRules) ShouldMatch(pattern *regexp.Regexp, message ...string) *TelRules {
	if pattern == nil {
		return t
	}
	t.pattern = &PatternRule{Value: pattern, Message: messageOr(message, "Invalid phone number")}
	return t
}

// Compile returns the accumulated rules.
func (t *TelRules) Compile() RuleSet {
	rules := t.compile()
	rules.Pattern = clonePattern(t.pattern)
	return rules
}

func digitCountCheck(msg string, ok func(int) bool) Check {
	return func(value any) (bool, string) {
		if IsEmpty(value) {
			return true, ""
		}
		if !ok(len(digitsOnly(ToString(value)))) {
			return false, msg
		}
		return true, ""
	}
}
