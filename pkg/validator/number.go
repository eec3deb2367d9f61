package validator

import (
	"fmt"
	"math"
)

// NumberRules builds rules for numeric fields.
type NumberRules struct {
	core[*NumberRules]
	min *BoundRule
	max *BoundRule
}

// Number starts a numeric rule builder.
func Number() *NumberRules {
	n := &NumberRules{}
	n.core = newCore(n)
	return n
}

// Min sets an inclusive lower bound.
func (n *NumberRules) Min(value float64, message ...string) *NumberRules {
	n.min = &BoundRule{Value: value, Message: messageOr(message, "Must be at least "+formatNumber(value))}
	return n
}

// Max sets an inclusive upper bound.
func (n *NumberRules) Max(value float64, message ...string) *NumberRules {
	n.max = &BoundRule{Value: value, Message: messageOr(message, "Must be at most "+formatNumber(value))}
	return n
}

// Between sets both inclusive bounds. A message, when given, is used for both.
func (n *NumberRules) Between(lower, upper float64, message ...string) *NumberRules {
	return n.Min(lower, message...).Max(upper, message...)
}

// Length requires the value to have exactly digits digits once every
// non-digit character is stripped.
func (n *NumberRules) Length(digits int, message ...string) *NumberRules {
	msg := messageOr(message, fmt.Sprintf("Must be exactly %d digits", digits))
	return n.check("length", func(value any) (bool, string) {
		if IsEmpty(value) {
			return true, ""
		}
		if len(digitsOnly(ToString(value))) != digits {
			return false, msg
		}
		return true, ""
	})
}

// Positive sets a lower bound of zero.
func (n *NumberRules) Positive(message ...string) *NumberRules {
	return n.Min(0, messageOr(message, "Must be a positive number"))
}

// Negative sets an upper bound of zero.
func (n *NumberRules) Negative(message ...string) *NumberRules {
	return n.Max(0, messageOr(message, "Must be a negative number"))
}

// Integer rejects fractional values.
func (n *NumberRules) Integer(message ...string) *NumberRules {
	msg := messageOr(message, "Must be a whole number")
	return n.check("integer", numericCheck(msg, func(v float64) bool {
		return v == math.Trunc(v)
	}))
}

// NonZero rejects zero.
func (n *NumberRules) NonZero(message ...string) *NumberRules {
	msg := messageOr(message, "Must not be zero")
	return n.check("nonZero", numericCheck(msg, func(v float64) bool {
		return v != 0
	}))
}

// MultipleOf requires the value to be an exact multiple of factor.
func (n *NumberRules) MultipleOf(factor float64, message ...string) *NumberRules {
	msg := messageOr(message, "Must be a multiple of "+formatNumber(factor))
	return n.check("multipleOf", numericCheck(msg, func(v float64) bool {
		if factor == 0 {
			return false
		}
		q := v / factor
		return math.Abs(q-math.Round(q)) < 1e-9
	}))
}

// Compile returns the accumulated rules.
func (n *NumberRules) Compile() RuleSet {
	rules := n.compile()
	rules.Min = cloneBound(n.min)
	rules.Max = cloneBound(n.max)
	return rules
}

func numericCheck(msg string, ok func(float64) bool) Check {
	return func(value any) (bool, string) {
		if IsEmpty(value) {
			return true, ""
		}
		v, parsed := ToFloat(value)
		if !parsed || !ok(v) {
			return false, msg
		}
		return true, ""
	}
}
