package validator

import (
	"regexp"
	"slices"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRules builds rules for email fields. The base address pattern is
// always applied.
type EmailRules struct {
	core[*EmailRules]
	pattern PatternRule
}

// Email starts an email rule builder. message overrides the base pattern
// message.
func Email(message ...string) *EmailRules {
	e := &EmailRules{
		pattern: PatternRule{Value: emailPattern, Message: messageOr(message, "Invalid email address")},
	}
	e.core = newCore(e)
	return e
}

// Domain only accepts addresses whose domain is in domains.
func (e *EmailRules) Domain(domains []string, message ...string) *EmailRules {
	allowed := normalizeDomains(domains)
	msg := messageOr(message, "Email must be from: "+strings.Join(allowed, ", "))
	return e.check("domain", func(value any) (bool, string) {
		domain, ok := emailDomain(value)
		if !ok {
			return true, ""
		}
		if slices.Contains(allowed, domain) {
			return true, ""
		}
		return false, msg
	})
}

// BlockedDomains rejects addresses whose domain is in domains.
func (e *EmailRules) BlockedDomains(domains []string, message ...string) *EmailRules {
	blocked := normalizeDomains(domains)
	msg := messageOr(message, "Email domain is not allowed")
	return e.check("blockedDomains", func(value any) (bool, string) {
		domain, ok := emailDomain(value)
		if !ok {
			return true, ""
		}
		if slices.Contains(blocked, domain) {
			return false, msg
		}
		return true, ""
	})
}

// Compile returns the accumulated rules.
func (e *EmailRules) Compile() RuleSet {
	rules := e.compile()
	pattern := e.pattern
	rules.Pattern = &pattern
	return rules
}

func emailDomain(value any) (string, bool) {
	s := strings.TrimSpace(ToString(value))
	idx := strings.LastIndex(s, "@")
	if idx < 0 {
		return "", false
	}
	return strings.ToLower(s[idx+1:]), true
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, domain := range domains {
		trimmed := strings.ToLower(strings.TrimSpace(domain))
		trimmed = strings.TrimPrefix(trimmed, "@")
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
