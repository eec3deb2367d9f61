package uischema_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/form"
	"github.com/goliatone/go-jsonform/pkg/uischema"
)

func TestLoadFS_Embedded(t *testing.T) {
	store, err := uischema.LoadFS(uischema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "signup"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	signup, ok := store.Form("signup")
	if !ok {
		t.Fatalf("signup form not found")
	}
	if signup.Columns != 2 || signup.SubmitLabel != "Sign up" {
		t.Fatalf("unexpected form settings %+v", signup)
	}
	if signup.Source != "account.yaml" {
		t.Fatalf("source mismatch: %s", signup.Source)
	}
	if got := len(signup.Fields); got != 8 {
		t.Fatalf("expected 8 fields, got %d", got)
	}
	if signup.Fields[2].Span != 2 || signup.Fields[2].Type != "email" {
		t.Fatalf("email field not parsed: %+v", signup.Fields[2])
	}
}

func TestLoadFS_NilAndEmpty(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store, got %v (%v)", store, err)
	}
	store, err = uischema.LoadFS(fstest.MapFS{"README.md": {Data: []byte("# forms")}})
	if err != nil || !store.Empty() {
		t.Fatalf("non schema files must be ignored, got %v (%v)", store.IDs(), err)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {
			"a.yaml": {Data: []byte("  \n")},
		},
		"invalid json": {
			"a.json": {Data: []byte(`{"forms": [}`)},
		},
		"duplicate form across files": {
			"a.yaml": {Data: []byte("forms:\n  one:\n    fields: []\n")},
			"b.yaml": {Data: []byte("forms:\n  one:\n    fields: []\n")},
		},
		"duplicate field": {
			"a.yaml": {Data: []byte("forms:\n  one:\n    fields:\n      - name: a\n      - name: a\n")},
		},
		"unnamed field": {
			"a.yaml": {Data: []byte("forms:\n  one:\n    fields:\n      - type: text\n")},
		},
		"columns out of range": {
			"a.yaml": {Data: []byte("forms:\n  one:\n    columns: 4\n")},
		},
	}

	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uischema.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParse_UnknownExtensionTriesJSONThenYAML(t *testing.T) {
	docs, err := uischema.Parse([]byte("forms:\n  a:\n    title: A\n"), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "A" || docs[0].Columns != 1 {
		t.Fatalf("unexpected documents %+v", docs)
	}

	docs, err = uischema.Parse([]byte(`{"forms":{"b":{"columns":3}}}`), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "b" || docs[0].Columns != 3 {
		t.Fatalf("unexpected documents %+v", docs)
	}
}

func TestBuild_SignupConfirmMatchReadsLiveValue(t *testing.T) {
	doc := embeddedForm(t, "signup")
	var submitted form.Values
	f, err := doc.Build(form.WithSubmitHandler(func(values form.Values) error {
		submitted = values
		return nil
	}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.Columns() != 2 {
		t.Fatalf("columns mismatch: %d", f.Columns())
	}

	mustChange(t, f, "firstName", "Ada")
	mustChange(t, f, "lastName", "Lovelace")
	mustChange(t, f, "email", "ada@example.com")
	mustChange(t, f, "password", "Abcdef1!")
	mustChange(t, f, "confirmPassword", "Abcdef1!")
	mustChange(t, f, "terms", true)

	if msg, _ := f.Blur("confirmPassword"); msg != "" {
		t.Fatalf("expected confirmation to match, got %q", msg)
	}

	mustChange(t, f, "password", "Zyxwvu9?")
	if msg, _ := f.Blur("confirmPassword"); msg != "Passwords do not match" {
		t.Fatalf("expected mismatch after password change, got %q", msg)
	}

	mustChange(t, f, "confirmPassword", "Zyxwvu9?")
	if err := f.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted["plan"] != "free" || submitted["referrer"] != "cli" {
		t.Fatalf("defaults missing from submitted values: %v", submitted)
	}
}

func TestBuild_SignupReportsEveryRule(t *testing.T) {
	f, err := embeddedForm(t, "signup").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mustChange(t, f, "email", "bot@mailinator.com")
	mustChange(t, f, "password", "short")

	err = f.Submit()
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := map[string]string{
		"firstName":       "First name is required",
		"lastName":        "Last name is required",
		"email":           "Email domain is not allowed",
		"password":        "Password must be at least 8 characters",
		"confirmPassword": "This field is required",
		"terms":           "This must be checked",
	}
	if diff := cmp.Diff(want, verr.Fields); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ContactUsesJSONRulesAndAdHocValidation(t *testing.T) {
	f, err := embeddedForm(t, "contact").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mustChange(t, f, "name", "A")
	mustChange(t, f, "phone", "12-34")
	mustChange(t, f, "message", strings.Repeat("x", 501))

	err = f.Submit()
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["name"] != "Minimum length is 2" {
		t.Fatalf("ad hoc validation not applied: %v", verr.Fields)
	}
	if verr.Fields["message"] != "Must be at most 500 characters" {
		t.Fatalf("maxLength rule not applied: %v", verr.Fields)
	}
	if verr.Fields["phone"] == "" {
		t.Fatalf("tel rule not applied: %v", verr.Fields)
	}
	if verr.Fields["topics"] != "Select at least 1 item" {
		t.Fatalf("minItems rule not applied: %v", verr.Fields)
	}
	if _, failed := verr.Fields["attachment"]; failed {
		t.Fatalf("empty optional file field must pass: %v", verr.Fields)
	}

	b, ok := f.Binding("message")
	if !ok || b.Rows != 5 || !b.Required {
		t.Fatalf("unexpected message binding %+v", b)
	}
	if b, _ := f.Binding("topics"); !b.Multiple || len(b.Options) != 3 {
		t.Fatalf("unexpected topics binding %+v", b)
	}
}

func TestBuild_RejectsBadRules(t *testing.T) {
	cases := map[string]string{
		"unknown rule":         "forms:\n  f:\n    fields:\n      - name: a\n        rules:\n          - rule: sparkle\n",
		"rule for other kind":  "forms:\n  f:\n    fields:\n      - name: a\n        type: number\n        rules:\n          - rule: noSpaces\n",
		"non numeric value":    "forms:\n  f:\n    fields:\n      - name: a\n        rules:\n          - rule: minLength\n            value: lots\n",
		"bad pattern":          "forms:\n  f:\n    fields:\n      - name: a\n        rules:\n          - rule: pattern\n            value: \"(\"\n",
		"bad ad hoc pattern":   "forms:\n  f:\n    fields:\n      - name: a\n        validation:\n          pattern: \"[\"\n",
		"confirm without peer": "forms:\n  f:\n    fields:\n      - name: a\n        type: password\n        rules:\n          - rule: confirmMatch\n",
		"between needs pair":   "forms:\n  f:\n    fields:\n      - name: a\n        type: number\n        rules:\n          - rule: between\n            values: [1]\n",
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			docs, err := uischema.Parse([]byte(src), "case.yaml")
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := docs[0].Build(); err == nil {
				t.Fatalf("expected build error")
			}
		})
	}
}

func TestBuild_NumberAndDateRulesFromYAML(t *testing.T) {
	src := `
forms:
  booking:
    fields:
      - name: guests
        type: number
        rules:
          - rule: between
            values: [1, 8]
          - rule: integer
      - name: code
        type: text
        rules:
          - rule: lengthBetween
            values: [2, 4]
      - name: day
        type: date
        rules:
          - rule: between
            values: [2030-01-01, 2030-12-31]
`
	docs, err := uischema.Parse([]byte(src), "booking.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f, err := docs[0].Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	cases := []struct {
		field string
		value any
		valid bool
	}{
		{"guests", 8, true},
		{"guests", 9, false},
		{"guests", 2.5, false},
		{"code", "abc", true},
		{"code", "abcde", false},
		{"day", "2030-06-15", true},
		{"day", "2031-01-01", false},
		{"day", "not a date", false},
	}
	for _, tc := range cases {
		mustChange(t, f, tc.field, tc.value)
		msg, _ := f.Blur(tc.field)
		if (msg == "") != tc.valid {
			t.Fatalf("%s=%v: expected valid=%v, got message %q", tc.field, tc.value, tc.valid, msg)
		}
	}
}

func embeddedForm(t *testing.T, id string) uischema.Document {
	t.Helper()
	store, err := uischema.LoadFS(uischema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	doc, ok := store.Form(id)
	if !ok {
		t.Fatalf("form %q not found", id)
	}
	return doc
}

func mustChange(t *testing.T, f *form.Form, name string, value any) {
	t.Helper()
	if err := f.Change(name, value); err != nil {
		t.Fatalf("change %s: %v", name, err)
	}
}
