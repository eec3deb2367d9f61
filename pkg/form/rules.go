package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-jsonform/pkg/validator"
)

const customCheckName = "custom"

// EffectiveRules resolves the rules applied to field. A Validator's compiled
// rules are used in full, except that a schema level Required always
// replaces the builder's required entry. Without a Validator the rules are
// assembled from field.Validation.
func EffectiveRules(field Field) validator.RuleSet {
	if field.Validator != nil {
		rules := field.Validator.Compile()
		if field.Required {
			rules.Required = requiredMessage(field)
		}
		return rules
	}

	var rules validator.RuleSet
	if field.Required {
		rules.Required = requiredMessage(field)
	}

	v := field.Validation
	if v == nil {
		return rules
	}
	if v.MinLength != nil {
		rules.MinLength = &validator.LengthRule{
			Value:   *v.MinLength,
			Message: messageOr(v.Message, fmt.Sprintf("Minimum length is %d", *v.MinLength)),
		}
	}
	if v.MaxLength != nil {
		rules.MaxLength = &validator.LengthRule{
			Value:   *v.MaxLength,
			Message: messageOr(v.Message, fmt.Sprintf("Maximum length is %d", *v.MaxLength)),
		}
	}
	if v.Min != nil {
		rules.Min = &validator.BoundRule{
			Value:   *v.Min,
			Message: messageOr(v.Message, "Minimum value is "+validator.ToString(*v.Min)),
		}
	}
	if v.Max != nil {
		rules.Max = &validator.BoundRule{
			Value:   *v.Max,
			Message: messageOr(v.Message, "Maximum value is "+validator.ToString(*v.Max)),
		}
	}
	if v.Pattern != nil {
		rules.Pattern = &validator.PatternRule{
			Value:   v.Pattern,
			Message: messageOr(v.Message, "Invalid format"),
		}
	}
	if v.Custom != nil {
		custom := v.Custom
		fallback := messageOr(v.Message, validator.DefaultInvalidMessage)
		rules.Validate = validator.NewChecks()
		rules.Validate.Set(customCheckName, func(value any) (bool, string) {
			ok, msg := custom(value)
			if ok {
				return true, ""
			}
			return false, messageOr(msg, fallback)
		})
	}
	return rules
}

func requiredMessage(field Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label + " is required"
	}
	return validator.DefaultRequiredMessage
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) != "" {
		return message
	}
	return fallback
}
