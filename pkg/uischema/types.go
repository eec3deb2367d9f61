package uischema

import (
	"sort"
	"strings"
)

// Store keeps the form documents parsed from a filesystem. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Document
}

// Document is one declarative form.
type Document struct {
	ID          string
	Source      string
	Title       string
	Description string
	Columns     int
	SubmitLabel string
	CancelLabel string
	Fields      []FieldConfig
}

// FieldConfig declares a single field. Rules compile into the validator
// builder matching Type; Validation is the ad hoc alternative and is ignored
// when Rules are present.
type FieldConfig struct {
	Name        string            `json:"name" yaml:"name"`
	Type        string            `json:"type" yaml:"type"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	HelperText  string            `json:"helperText,omitempty" yaml:"helperText,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled    bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Options     []OptionConfig    `json:"options,omitempty" yaml:"options,omitempty"`
	Rows        int               `json:"rows,omitempty" yaml:"rows,omitempty"`
	Min         *float64          `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64          `json:"max,omitempty" yaml:"max,omitempty"`
	Step        *float64          `json:"step,omitempty" yaml:"step,omitempty"`
	Accept      string            `json:"accept,omitempty" yaml:"accept,omitempty"`
	Span        int               `json:"span,omitempty" yaml:"span,omitempty"`
	Validation  *ValidationConfig `json:"validation,omitempty" yaml:"validation,omitempty"`
	Rules       []RuleConfig      `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// OptionConfig is one choice of a select style field.
type OptionConfig struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ValidationConfig mirrors form.Validation with a pattern source string.
type ValidationConfig struct {
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message   string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// RuleConfig names one builder call. Value carries a scalar argument, Values
// a list argument and Field the peer field compared by confirmMatch.
type RuleConfig struct {
	Rule    string `json:"rule" yaml:"rule"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
	Values  []any  `json:"values,omitempty" yaml:"values,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Form returns the document registered under id.
func (s *Store) Form(id string) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	doc, ok := s.forms[strings.TrimSpace(id)]
	return doc, ok
}

// IDs lists the loaded document ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any documents.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}
