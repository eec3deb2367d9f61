package validator

import (
	"fmt"
	"slices"
	"strings"
)

// ArrayRules builds rules for multi-value fields: multi selects, tags and
// file lists.
type ArrayRules struct {
	core[*ArrayRules]
}

// Array starts a list rule builder.
func Array() *ArrayRules {
	a := &ArrayRules{}
	a.core = newCore(a)
	return a
}

// MinItems requires at least n items.
func (a *ArrayRules) MinItems(n int, message ...string) *ArrayRules {
	msg := messageOr(message, fmt.Sprintf("Select at least %d %s", n, plural(n, "item", "items")))
	return a.check("minItems", func(value any) (bool, string) {
		if itemCount(value) < n {
			return false, msg
		}
		return true, ""
	})
}

// MaxItems allows at most n items.
func (a *ArrayRules) MaxItems(n int, message ...string) *ArrayRules {
	msg := messageOr(message, fmt.Sprintf("Select at most %d %s", n, plural(n, "item", "items")))
	return a.check("maxItems", func(value any) (bool, string) {
		if itemCount(value) > n {
			return false, msg
		}
		return true, ""
	})
}

// ExactItems requires exactly n items.
func (a *ArrayRules) ExactItems(n int, message ...string) *ArrayRules {
	msg := messageOr(message, fmt.Sprintf("Select exactly %d %s", n, plural(n, "item", "items")))
	return a.check("exactItems", func(value any) (bool, string) {
		if itemCount(value) != n {
			return false, msg
		}
		return true, ""
	})
}

// NoEmpty rejects lists holding blank items.
func (a *ArrayRules) NoEmpty(message ...string) *ArrayRules {
	msg := messageOr(message, "Items cannot be empty")
	return a.check("noEmpty", func(value any) (bool, string) {
		for _, item := range ToStrings(value) {
			if strings.TrimSpace(item) == "" {
				return false, msg
			}
		}
		return true, ""
	})
}

// ShouldBeIn restricts every item to options. Without a custom message the
// failure names the offending items.
func (a *ArrayRules) ShouldBeIn(options []string, message ...string) *ArrayRules {
	allowed := slices.Clone(options)
	custom := messageOr(message, "")
	return a.check("shouldBeIn", func(value any) (bool, string) {
		var invalid []string
		for _, item := range ToStrings(value) {
			if !slices.Contains(allowed, item) {
				invalid = append(invalid, item)
			}
		}
		if len(invalid) == 0 {
			return true, ""
		}
		if custom != "" {
			return false, custom
		}
		return false, "Invalid selection: " + strings.Join(invalid, ", ")
	})
}

// Compile returns the accumulated rules.
func (a *ArrayRules) Compile() RuleSet {
	return a.compile()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
