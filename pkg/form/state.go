package form

import "github.com/goliatone/go-jsonform/pkg/validator"

// Values maps field names to their current values.
type Values map[string]any

// state tracks collected values and per-field error messages. Errors only
// ever hold the first failing message of a field.
type state struct {
	values Values
	errors map[string]string
}

func newState(seed Values) *state {
	return &state{
		values: cloneValues(seed),
		errors: make(map[string]string),
	}
}

func (s *state) value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

func (s *state) setValue(name string, value any) {
	if s.values == nil {
		s.values = make(Values)
	}
	s.values[name] = value
}

func (s *state) setError(name, message string) {
	if message == "" {
		delete(s.errors, name)
		return
	}
	s.errors[name] = message
}

func (s *state) replaceErrors(errs map[string]string) {
	s.errors = cloneErrors(errs)
}

func (s *state) snapshot() Values {
	if s == nil {
		return nil
	}
	return cloneValues(s.values)
}

func (s *state) errorSnapshot() map[string]string {
	if s == nil {
		return nil
	}
	return cloneErrors(s.errors)
}

func cloneValues(src Values) Values {
	out := make(Values, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func cloneErrors(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	case []validator.File:
		return append([]validator.File(nil), typed...)
	default:
		return typed
	}
}
