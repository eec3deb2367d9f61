package validator

import (
	"strings"
	"time"
)

// now is replaced in tests.
var now = time.Now

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
}

// DateRules builds rules for date fields. Every check first coerces the
// value; a value that cannot be read as a date always fails with
// InvalidDateMessage, whatever message the check was configured with.
type DateRules struct {
	core[*DateRules]
}

// Date starts a date rule builder.
func Date() *DateRules {
	d := &DateRules{}
	d.core = newCore(d)
	return d
}

// ValidDate requires the value to be readable as a date.
func (d *DateRules) ValidDate() *DateRules {
	return d.check("validDate", dateCheck("", func(time.Time) bool { return true }))
}

// MinDate requires the value to be on or after limit.
func (d *DateRules) MinDate(limit time.Time, message ...string) *DateRules {
	msg := messageOr(message, "Date must be on or after "+limit.Format(time.DateOnly))
	return d.check("minDate", dateCheck(msg, func(t time.Time) bool { return !t.Before(limit) }))
}

// MaxDate requires the value to be on or before limit.
func (d *DateRules) MaxDate(limit time.Time, message ...string) *DateRules {
	msg := messageOr(message, "Date must be on or before "+limit.Format(time.DateOnly))
	return d.check("maxDate", dateCheck(msg, func(t time.Time) bool { return !t.After(limit) }))
}

// Between requires the value to fall inside [start, end].
func (d *DateRules) Between(start, end time.Time, message ...string) *DateRules {
	msg := messageOr(message, "Date must be between "+start.Format(time.DateOnly)+" and "+end.Format(time.DateOnly))
	return d.check("between", dateCheck(msg, func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}))
}

// NotInPast rejects dates before the start of today.
func (d *DateRules) NotInPast(message ...string) *DateRules {
	msg := messageOr(message, "Date cannot be in the past")
	return d.check("notInPast", dateCheck(msg, func(t time.Time) bool {
		return !t.Before(startOfDay(now()))
	}))
}

// NotInFuture rejects dates after the end of today.
func (d *DateRules) NotInFuture(message ...string) *DateRules {
	msg := messageOr(message, "Date cannot be in the future")
	return d.check("notInFuture", dateCheck(msg, func(t time.Time) bool {
		return !t.After(endOfDay(now()))
	}))
}

// Compile returns the accumulated rules.
func (d *DateRules) Compile() RuleSet {
	return d.compile()
}

// ParseDate coerces a time.Time, an ISO style string or a millisecond Unix
// timestamp into a time. Date-only strings are read in the local zone; a
// string matching no layout is tried as a timestamp.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
	}
	if ms, ok := ToFloat(value); ok {
		return time.UnixMilli(int64(ms)), true
	}
	return time.Time{}, false
}

func dateCheck(msg string, ok func(time.Time) bool) Check {
	return func(value any) (bool, string) {
		if IsEmpty(value) {
			return true, ""
		}
		t, parsed := ParseDate(value)
		if !parsed {
			return false, InvalidDateMessage
		}
		if !ok(t) {
			return false, msg
		}
		return true, ""
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
