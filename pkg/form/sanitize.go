package form

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans a free text value before it is stored.
type Sanitizer func(string) string

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StrictSanitizer strips every HTML element from the input and returns plain
// text.
func StrictSanitizer() Sanitizer {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return func(input string) string {
		return html.UnescapeString(strictPolicy.Sanitize(input))
	}
}

// sanitizes reports whether values of kind pass through the sanitizer.
// Secrets, carried values and structured kinds are stored as given.
func sanitizes(kind Kind) bool {
	switch kind {
	case KindPassword, KindHidden, KindFile, KindCheckbox, KindSwitch, KindDate:
		return false
	default:
		return true
	}
}

func sanitizeValue(clean Sanitizer, value any) any {
	switch typed := value.(type) {
	case string:
		return clean(typed)
	case []string:
		out := make([]string, len(typed))
		for i, item := range typed {
			out[i] = clean(item)
		}
		return out
	default:
		return value
	}
}
