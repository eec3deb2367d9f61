package uischema

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/goliatone/go-jsonform/pkg/form"
	"github.com/goliatone/go-jsonform/pkg/validator"
)

// PeerLookup returns the live value of another field. It is consulted at
// validation time by rules comparing two fields.
type PeerLookup func(name string) any

// CompileRules turns a rules list into the validator builder for kind.
// Unknown rule names and malformed arguments are errors.
func CompileRules(kind form.Kind, rules []RuleConfig, peer PeerLookup) (validator.Builder, error) {
	switch kind {
	case form.KindEmail:
		return compileEmail(rules)
	case form.KindPassword:
		return compilePassword(rules, peer)
	case form.KindNumber:
		return compileNumber(rules)
	case form.KindTel:
		return compileTel(rules)
	case form.KindURL:
		return compileURL(rules)
	case form.KindSelect, form.KindSearchSelect:
		return compileSelect(rules)
	case form.KindMultiSelect, form.KindMultiSearchSelect:
		return compileArray(rules)
	case form.KindCheckbox, form.KindSwitch:
		return compileBoolean(rules)
	case form.KindDate:
		return compileDate(rules)
	case form.KindFile:
		return compileFile(rules)
	default:
		return compileText(rules)
	}
}

func compileText(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Text()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "minLength":
			err = withInt(r, func(n int) { b.MinLength(n, r.Message) })
		case "maxLength":
			err = withInt(r, func(n int) { b.MaxLength(n, r.Message) })
		case "length":
			err = withInt(r, func(n int) { b.Length(n, r.Message) })
		case "lengthBetween":
			var lower, upper float64
			if lower, upper, err = r.pair(); err == nil {
				b.LengthBetween(int(lower), int(upper), r.Message)
			}
		case "pattern":
			err = withPattern(r, func(re *regexp.Regexp) { b.ShouldMatch(re, r.Message) })
		case "oneOf":
			b.ShouldBeIn(r.strings(), r.Message)
		case "notEmpty":
			b.NotEmpty(r.Message)
		case "noSpaces":
			b.NoSpaces(r.Message)
		case "alphanumeric":
			b.Alphanumeric(r.Message)
		case "startsWith":
			b.StartsWith(validator.ToString(r.Value), r.Message)
		case "endsWith":
			b.EndsWith(validator.ToString(r.Value), r.Message)
		default:
			err = unsupported(r, "text")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compileEmail(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Email(messageFor(rules, "email"))
	for _, r := range rules {
		switch r.Rule {
		case "email":
		case "required":
			b.Required(r.Message)
		case "domain":
			b.Domain(r.strings(), r.Message)
		case "blockedDomains":
			b.BlockedDomains(r.strings(), r.Message)
		default:
			return nil, unsupported(r, "email")
		}
	}
	return b, nil
}

func compilePassword(rules []RuleConfig, peer PeerLookup) (validator.Builder, error) {
	b := validator.Password()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "minLength":
			err = withInt(r, func(n int) { b.MinLength(n, r.Message) })
		case "maxLength":
			err = withInt(r, func(n int) { b.MaxLength(n, r.Message) })
		case "uppercase":
			b.HasUppercase(r.Message)
		case "lowercase":
			b.HasLowercase(r.Message)
		case "digit":
			b.HasDigit(r.Message)
		case "specialChar":
			b.HasSpecialChar(r.Message)
		case "noSpaces":
			b.NoSpaces(r.Message)
		case "strong":
			b.Strong()
		case "confirmMatch":
			if r.Field == "" {
				err = fmt.Errorf("uischema: rule %q needs a field", r.Rule)
				break
			}
			if peer == nil {
				err = fmt.Errorf("uischema: rule %q needs a peer lookup", r.Rule)
				break
			}
			other := r.Field
			b.ConfirmMatch(func() any { return peer(other) }, r.Message)
		default:
			err = unsupported(r, "password")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compileNumber(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Number()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "min":
			err = withFloat(r, func(v float64) { b.Min(v, r.Message) })
		case "max":
			err = withFloat(r, func(v float64) { b.Max(v, r.Message) })
		case "between":
			var lower, upper float64
			if lower, upper, err = r.pair(); err == nil {
				b.Between(lower, upper, r.Message)
			}
		case "length":
			err = withInt(r, func(n int) { b.Length(n, r.Message) })
		case "positive":
			b.Positive(r.Message)
		case "negative":
			b.Negative(r.Message)
		case "integer":
			b.Integer(r.Message)
		case "nonZero":
			b.NonZero(r.Message)
		case "multipleOf":
			err = withFloat(r, func(v float64) { b.MultipleOf(v, r.Message) })
		default:
			err = unsupported(r, "number")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compileTel(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Tel()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "length":
			err = withInt(r, func(n int) { b.Length(n, r.Message) })
		case "minLength":
			err = withInt(r, func(n int) { b.MinLength(n, r.Message) })
		case "maxLength":
			err = withInt(r, func(n int) { b.MaxLength(n, r.Message) })
		case "pattern":
			err = withPattern(r, func(re *regexp.Regexp) { b.ShouldMatch(re, r.Message) })
		default:
			err = unsupported(r, "tel")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compileURL(rules []RuleConfig) (validator.Builder, error) {
	b := validator.URL(messageFor(rules, "url"))
	for _, r := range rules {
		switch r.Rule {
		case "url":
		case "required":
			b.Required(r.Message)
		case "httpsOnly":
			b.HTTPSOnly(r.Message)
		case "allowedDomains":
			b.AllowedDomains(r.strings(), r.Message)
		case "noTrailingSlash":
			b.NoTrailingSlash(r.Message)
		default:
			return nil, unsupported(r, "url")
		}
	}
	return b, nil
}

func compileSelect(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Select()
	for _, r := range rules {
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "oneOf":
			b.ShouldBeIn(r.strings(), r.Message)
		case "notEmpty":
			b.NotEmpty(r.Message)
		default:
			return nil, unsupported(r, "select")
		}
	}
	return b, nil
}

func compileArray(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Array()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "minItems":
			err = withInt(r, func(n int) { b.MinItems(n, r.Message) })
		case "maxItems":
			err = withInt(r, func(n int) { b.MaxItems(n, r.Message) })
		case "exactItems":
			err = withInt(r, func(n int) { b.ExactItems(n, r.Message) })
		case "noEmpty":
			b.NoEmpty(r.Message)
		case "oneOf":
			b.ShouldBeIn(r.strings(), r.Message)
		default:
			err = unsupported(r, "multi-select")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compileBoolean(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Boolean()
	for _, r := range rules {
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "mustBeTrue":
			b.MustBeTrue(r.Message)
		default:
			return nil, unsupported(r, "checkbox")
		}
	}
	return b, nil
}

func compileDate(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Date()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "validDate":
			b.ValidDate()
		case "minDate":
			err = withDate(r, r.Value, func(t time.Time) { b.MinDate(t, r.Message) })
		case "maxDate":
			err = withDate(r, r.Value, func(t time.Time) { b.MaxDate(t, r.Message) })
		case "between":
			if len(r.Values) != 2 {
				err = fmt.Errorf("uischema: rule %q needs two values", r.Rule)
				break
			}
			start, okStart := validator.ParseDate(r.Values[0])
			end, okEnd := validator.ParseDate(r.Values[1])
			if !okStart || !okEnd {
				err = fmt.Errorf("uischema: rule %q has an invalid date", r.Rule)
				break
			}
			b.Between(start, end, r.Message)
		case "notInPast":
			b.NotInPast(r.Message)
		case "notInFuture":
			b.NotInFuture(r.Message)
		default:
			err = unsupported(r, "date")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func compileFile(rules []RuleConfig) (validator.Builder, error) {
	b := validator.Files()
	for _, r := range rules {
		var err error
		switch r.Rule {
		case "required":
			b.Required(r.Message)
		case "maxSize":
			err = withInt(r, func(n int) { b.MaxSize(int64(n), r.Message) })
		case "allowedTypes":
			b.AllowedTypes(r.strings(), r.Message)
		case "allowedExtensions":
			b.AllowedExtensions(r.strings(), r.Message)
		case "maxFiles":
			err = withInt(r, func(n int) { b.MaxFiles(n, r.Message) })
		case "minFiles":
			err = withInt(r, func(n int) { b.MinFiles(n, r.Message) })
		default:
			err = unsupported(r, "file")
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func unsupported(r RuleConfig, family string) error {
	return fmt.Errorf("uischema: rule %q is not supported for %s fields", r.Rule, family)
}

// messageFor returns the message of the first rule named name.
func messageFor(rules []RuleConfig, name string) string {
	for _, r := range rules {
		if r.Rule == name {
			return r.Message
		}
	}
	return ""
}

func withInt(r RuleConfig, apply func(int)) error {
	v, ok := validator.ToFloat(r.Value)
	if !ok || v != math.Trunc(v) {
		return fmt.Errorf("uischema: rule %q needs an integer value, got %v", r.Rule, r.Value)
	}
	apply(int(v))
	return nil
}

func withFloat(r RuleConfig, apply func(float64)) error {
	v, ok := validator.ToFloat(r.Value)
	if !ok {
		return fmt.Errorf("uischema: rule %q needs a numeric value, got %v", r.Rule, r.Value)
	}
	apply(v)
	return nil
}

func withPattern(r RuleConfig, apply func(*regexp.Regexp)) error {
	re, err := regexp.Compile(validator.ToString(r.Value))
	if err != nil {
		return fmt.Errorf("uischema: rule %q: %w", r.Rule, err)
	}
	apply(re)
	return nil
}

func withDate(r RuleConfig, raw any, apply func(time.Time)) error {
	t, ok := validator.ParseDate(raw)
	if !ok {
		return fmt.Errorf("uischema: rule %q needs a date value, got %v", r.Rule, raw)
	}
	apply(t)
	return nil
}

func (r RuleConfig) pair() (float64, float64, error) {
	if len(r.Values) != 2 {
		return 0, 0, fmt.Errorf("uischema: rule %q needs two values", r.Rule)
	}
	lower, okLower := validator.ToFloat(r.Values[0])
	upper, okUpper := validator.ToFloat(r.Values[1])
	if !okLower || !okUpper {
		return 0, 0, fmt.Errorf("uischema: rule %q needs numeric values", r.Rule)
	}
	return lower, upper, nil
}

func (r RuleConfig) strings() []string {
	out := make([]string, 0, len(r.Values))
	for _, v := range r.Values {
		out = append(out, validator.ToString(v))
	}
	return out
}
