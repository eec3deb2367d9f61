package validator

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_CompileIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("compiling twice yields equivalent rule sets", prop.ForAll(
		func(minLen, maxLen int, required bool, input string) bool {
			b := Text().LengthBetween(minLen, maxLen).NoSpaces()
			if required {
				b.Required()
			}
			first := b.Compile()
			second := b.Compile()

			if first.Required != second.Required {
				return false
			}
			if *first.MinLength != *second.MinLength || *first.MaxLength != *second.MaxLength {
				return false
			}
			if strings.Join(first.Validate.Names(), ",") != strings.Join(second.Validate.Names(), ",") {
				return false
			}
			m1, ok1 := first.Evaluate(input)
			m2, ok2 := second.Evaluate(input)
			return m1 == m2 && ok1 == ok2
		},
		gen.IntRange(0, 10),
		gen.IntRange(10, 20),
		gen.Bool(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestProperty_NumberBetweenIsInclusive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("values inside [lower, upper] pass, values outside fail", prop.ForAll(
		func(lower, width, value int) bool {
			upper := lower + width
			_, ok := Number().Between(float64(lower), float64(upper)).Compile().Evaluate(value)
			inside := value >= lower && value <= upper
			return ok == inside
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(0, 500),
		gen.IntRange(-2000, 2000),
	))

	properties.TestingRun(t)
}

func TestProperty_LastRegistrationWins(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("re-registering a name keeps one entry with the latest check", prop.ForAll(
		func(name string, first, second string) bool {
			rules := Text().
				Custom(name, func(any) (bool, string) { return false, "x" + first }).
				Custom(name, func(any) (bool, string) { return false, "y" + second }).
				Compile()
			msg, ok := rules.Evaluate("value")
			return !ok && rules.Validate.Len() == 1 && msg == "y"+second
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
