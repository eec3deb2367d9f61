package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// TextRules builds rules for free-form text fields.
type TextRules struct {
	core[*TextRules]
	minLength *LengthRule
	maxLength *LengthRule
	pattern   *PatternRule
}

// Text starts a text rule builder.
func Text() *TextRules {
	t := &TextRules{}
	t.core = newCore(t)
	return t
}

// MinLength requires at least n characters.
func (t *TextRules) MinLength(n int, message ...string) *TextRules {
	t.minLength = &LengthRule{Value: n, Message: messageOr(message, fmt.Sprintf("Must be at least %d characters", n))}
	return t
}

// MaxLength allows at most n characters.
func (t *TextRules) MaxLength(n int, message ...string) *TextRules {
	t.maxLength = &LengthRule{Value: n, Message: messageOr(message, fmt.Sprintf("Must be at most %d characters", n))}
	return t
}

// LengthBetween bounds the character count on both sides.
func (t *TextRules) LengthBetween(lower, upper int, message ...string) *TextRules {
	msg := messageOr(message, fmt.Sprintf("Must be between %d and %d characters", lower, upper))
	t.minLength = &LengthRule{Value: lower, Message: msg}
	t.maxLength = &LengthRule{Value: upper, Message: msg}
	return t
}

// Length requires exactly n characters.
func (t *TextRules) Length(n int, message ...string) *TextRules {
	msg := messageOr(message, fmt.Sprintf("Must be exactly %d characters", n))
	t.minLength = &LengthRule{Value: n, Message: msg}
	t.maxLength = &LengthRule{Value: n, Message: msg}
	return t
}

// ShouldMatch requires the value to match pattern.
func (t *TextRules) ShouldMatch(pattern *regexp.Regexp, message ...string) *TextRules {
	if pattern == nil {
		return t
	}
	t.pattern = &PatternRule{Value: pattern, Message: messageOr(message, "Invalid format")}
	return t
}

// ShouldBeIn restricts the value to the listed options.
func (t *TextRules) ShouldBeIn(options []string, message ...string) *TextRules {
	allowed := slices.Clone(options)
	msg := messageOr(message, "Must be one of: "+strings.Join(allowed, ", "))
	return t.check("shouldBeIn", func(value any) (bool, string) {
		if IsEmpty(value) {
			return true, ""
		}
		if slices.Contains(allowed, ToString(value)) {
			return true, ""
		}
		return false, msg
	})
}

// NotEmpty rejects values made only of whitespace.
func (t *TextRules) NotEmpty(message ...string) *TextRules {
	msg := messageOr(message, "This field cannot be empty")
	return t.check("notEmpty", func(value any) (bool, string) {
		if strings.TrimSpace(ToString(value)) == "" {
			return false, msg
		}
		return true, ""
	})
}

// NoSpaces rejects any whitespace.
func (t *TextRules) NoSpaces(message ...string) *TextRules {
	return t.check("noSpaces", noSpacesCheck(messageOr(message, "Spaces are not allowed")))
}

// Alphanumeric allows letters and digits only.
func (t *TextRules) Alphanumeric(message ...string) *TextRules {
	msg := messageOr(message, "Only letters and numbers are allowed")
	return t.check("alphanumeric", func(value any) (bool, string) {
		for _, r := range ToString(value) {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false, msg
			}
		}
		return true, ""
	})
}

// StartsWith requires the value to begin with prefix.
func (t *TextRules) StartsWith(prefix string, message ...string) *TextRules {
	msg := messageOr(message, fmt.Sprintf("Must start with %q", prefix))
	return t.check("startsWith", func(value any) (bool, string) {
		s := ToString(value)
		if s == "" || strings.HasPrefix(s, prefix) {
			return true, ""
		}
		return false, msg
	})
}

// EndsWith requires the value to end with suffix.
func (t *TextRules) EndsWith(suffix string, message ...string) *TextRules {
	msg := messageOr(message, fmt.Sprintf("Must end with %q", suffix))
	return t.check("endsWith", func(value any) (bool, string) {
		s := ToString(value)
		if s == "" || strings.HasSuffix(s, suffix) {
			return true, ""
		}
		return false, msg
	})
}

// Compile returns the accumulated rules.
func (t *TextRules) Compile() RuleSet {
	rules := t.compile()
	rules.MinLength = cloneLength(t.minLength)
	rules.MaxLength = cloneLength(t.maxLength)
	rules.Pattern = clonePattern(t.pattern)
	return rules
}

func noSpacesCheck(msg string) Check {
	return func(value any) (bool, string) {
		if strings.IndexFunc(ToString(value), unicode.IsSpace) >= 0 {
			return false, msg
		}
		return true, ""
	}
}
