package validator

import (
	"fmt"
	"regexp"
)

var (
	uppercasePattern   = regexp.MustCompile(`[A-Z]`)
	lowercasePattern   = regexp.MustCompile(`[a-z]`)
	digitPattern       = regexp.MustCompile(`[0-9]`)
	specialCharPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?~` + "`" + `]`)
)

// PasswordRules builds rules for password fields.
type PasswordRules struct {
	core[*PasswordRules]
	minLength *LengthRule
	maxLength *LengthRule
}

// Password starts a password rule builder.
func Password() *PasswordRules {
	p := &PasswordRules{}
	p.core = newCore(p)
	return p
}

// MinLength requires at least n characters.
func (p *PasswordRules) MinLength(n int, message ...string) *PasswordRules {
	p.minLength = &LengthRule{Value: n, Message: messageOr(message, fmt.Sprintf("Password must be at least %d characters", n))}
	return p
}

// MaxLength allows at most n characters.
func (p *PasswordRules) MaxLength(n int, message ...string) *PasswordRules {
	p.maxLength = &LengthRule{Value: n, Message: messageOr(message, fmt.Sprintf("Password must be at most %d characters", n))}
	return p
}

// HasUppercase requires an uppercase ASCII letter.
func (p *PasswordRules) HasUppercase(message ...string) *PasswordRules {
	return p.check("hasUppercase", patternCheck(uppercasePattern, messageOr(message, "Password must contain an uppercase letter")))
}

// HasLowercase requires a lowercase ASCII letter.
func (p *PasswordRules) HasLowercase(message ...string) *PasswordRules {
	return p.check("hasLowercase", patternCheck(lowercasePattern, messageOr(message, "Password must contain a lowercase letter")))
}

// HasDigit requires a digit.
func (p *PasswordRules) HasDigit(message ...string) *PasswordRules {
	return p.check("hasDigit", patternCheck(digitPattern, messageOr(message, "Password must contain a number")))
}

// HasSpecialChar requires a punctuation or symbol character.
func (p *PasswordRules) HasSpecialChar(message ...string) *PasswordRules {
	return p.check("hasSpecialChar", patternCheck(specialCharPattern, messageOr(message, "Password must contain a special character")))
}

// NoSpaces rejects any whitespace.
func (p *PasswordRules) NoSpaces(message ...string) *PasswordRules {
	return p.check("noSpaces", noSpacesCheck(messageOr(message, "Password cannot contain spaces")))
}

// ConfirmMatch requires the value to equal whatever other returns at
// validation time. other is called on every check, never at build time.
func (p *PasswordRules) ConfirmMatch(other func() any, message ...string) *PasswordRules {
	msg := messageOr(message, "Passwords do not match")
	return p.check("confirmMatch", func(value any) (bool, string) {
		var expected any
		if other != nil {
			expected = other()
		}
		if ToString(value) != ToString(expected) {
			return false, msg
		}
		return true, ""
	})
}

// Strong is shorthand for MinLength(8) plus all four character class checks.
func (p *PasswordRules) Strong() *PasswordRules {
	return p.MinLength(8).
		HasUppercase().
		HasLowercase().
		HasDigit().
		HasSpecialChar()
}

// Compile returns the accumulated rules.
func (p *PasswordRules) Compile() RuleSet {
	rules := p.compile()
	rules.MinLength = cloneLength(p.minLength)
	rules.MaxLength = cloneLength(p.maxLength)
	return rules
}

func patternCheck(re *regexp.Regexp, msg string) Check {
	return func(value any) (bool, string) {
		s := ToString(value)
		if s == "" || re.MatchString(s) {
			return true, ""
		}
		return false, msg
	}
}
