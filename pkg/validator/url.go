package validator

import (
	"net/url"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#][^\s]*$`)

// URLRules builds rules for absolute http(s) URLs.
type URLRules struct {
	core[*URLRules]
	pattern PatternRule
}

// URL starts a URL rule builder. message overrides the base pattern message.
func URL(message ...string) *URLRules {
	u := &URLRules{
		pattern: PatternRule{Value: urlPattern, Message: messageOr(message, "Invalid URL")},
	}
	u.core = newCore(u)
	return u
}

// HTTPSOnly rejects anything but https URLs.
func (u *URLRules) HTTPSOnly(message ...string) *URLRules {
	msg := messageOr(message, "URL must use HTTPS")
	return u.check("httpsOnly", func(value any) (bool, string) {
		s := strings.TrimSpace(ToString(value))
		if s == "" || strings.HasPrefix(strings.ToLower(s), "https://") {
			return true, ""
		}
		return false, msg
	})
}

// AllowedDomains accepts hosts equal to, or subdomains of, one of domains.
func (u *URLRules) AllowedDomains(domains []string, message ...string) *URLRules {
	allowed := normalizeDomains(domains)
	msg := messageOr(message, "URL domain must be one of: "+strings.Join(allowed, ", "))
	return u.check("allowedDomains", func(value any) (bool, string) {
		s := strings.TrimSpace(ToString(value))
		if s == "" {
			return true, ""
		}
		parsed, err := url.Parse(s)
		if err != nil || parsed.Hostname() == "" {
			return false, msg
		}
		host := strings.ToLower(parsed.Hostname())
		for _, domain := range allowed {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true, ""
			}
		}
		return false, msg
	})
}

// NoTrailingSlash rejects URLs ending in "/".
func (u *URLRules) NoTrailingSlash(message ...string) *URLRules {
	msg := messageOr(message, "URL must not end with a slash")
	return u.check("noTrailingSlash", func(value any) (bool, string) {
		if strings.HasSuffix(strings.TrimSpace(ToString(value)), "/") {
			return false, msg
		}
		return true, ""
	})
}

// Compile returns the accumulated rules.
func (u *URLRules) Compile() RuleSet {
	rules := u.compile()
	pattern := u.pattern
	rules.Pattern = &pattern
	return rules
}
