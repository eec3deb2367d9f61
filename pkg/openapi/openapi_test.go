package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/form"
)

const accountsSpec = `
openapi: 3.0.3
info:
  title: Accounts
  version: 1.0.0
paths:
  /accounts:
    get:
      responses:
        "200":
          description: ok
    post:
      operationId: createAccount
      summary: Create account
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Account"
      responses:
        "201":
          description: created
components:
  schemas:
    Account:
      type: object
      required: [username, email]
      properties:
        id:
          type: string
          readOnly: true
        username:
          type: string
          minLength: 3
          maxLength: 20
          pattern: "^[a-z0-9_]+$"
          x-order: 1
        email:
          type: string
          format: email
          x-order: 2
        display_name:
          type: string
          title: Public name
        bio:
          type: string
          maxLength: 500
          description: Tell us about yourself
        age:
          type: integer
          minimum: 13
          maximum: 120
        website:
          type: string
          format: uri
        birthday:
          type: string
          format: date
        plan:
          type: string
          enum: [free, pro]
          default: free
          x-jsonform-span: 2
        interests:
          type: array
          minItems: 1
          items:
            type: string
            enum: [go, rust]
        newsletter:
          type: boolean
        avatar:
          type: string
          format: binary
        secret_code:
          type: string
          x-jsonform-kind: password
        address:
          type: object
          properties:
            city:
              type: string
        tags:
          type: array
          items:
            type: string
`

func loadAccounts(t *testing.T) Document {
	t.Helper()
	loader := NewLoader(WithFileSystem(fstest.MapFS{
		"accounts.yaml": &fstest.MapFile{Data: []byte(accountsSpec)},
	}))
	doc, err := loader.Load(context.Background(), SourceFromFS("accounts.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestOperationsKeysByIDAndFallback(t *testing.T) {
	ops, err := Operations(context.Background(), loadAccounts(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	create, ok := ops["createAccount"]
	if !ok {
		t.Fatalf("expected createAccount, got %v", ops)
	}
	if create.Method != "POST" || create.Path != "/accounts" || create.Body == nil {
		t.Fatalf("unexpected operation: %+v", create)
	}

	list, ok := ops["get:/accounts"]
	if !ok {
		t.Fatalf("expected fallback id for unnamed operation")
	}
	if list.Body != nil {
		t.Fatalf("expected GET operation without body")
	}
}

func TestFindOperationNotFound(t *testing.T) {
	_, err := FindOperation(context.Background(), loadAccounts(t), "deleteAccount")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestFieldsMapsRequestBody(t *testing.T) {
	op, fields, err := LoadFields(context.Background(), NewLoader(WithFileSystem(fstest.MapFS{
		"accounts.yaml": &fstest.MapFile{Data: []byte(accountsSpec)},
	})), SourceFromFS("accounts.yaml"), "createAccount")
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	if op.Summary != "Create account" {
		t.Fatalf("unexpected summary %q", op.Summary)
	}

	type shape struct {
		Name string
		Kind form.Kind
	}
	var got []shape
	for _, f := range fields {
		got = append(got, shape{f.Name, f.Type})
	}
	want := []shape{
		{"username", form.KindText},
		{"email", form.KindEmail},
		{"age", form.KindNumber},
		{"avatar", form.KindFile},
		{"bio", form.KindTextarea},
		{"birthday", form.KindDate},
		{"display_name", form.KindText},
		{"interests", form.KindMultiSelect},
		{"newsletter", form.KindCheckbox},
		{"plan", form.KindSelect},
		{"secret_code", form.KindPassword},
		{"website", form.KindURL},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	byName := make(map[string]form.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	if !byName["username"].Required || byName["bio"].Required {
		t.Fatalf("required flags not mapped")
	}
	if got := byName["display_name"].Label; got != "Public name" {
		t.Fatalf("expected title as label, got %q", got)
	}
	if got := byName["secret_code"].Label; got != "Secret code" {
		t.Fatalf("expected humanized label, got %q", got)
	}
	if got := byName["bio"].HelperText; got != "Tell us about yourself" {
		t.Fatalf("expected description as helper text, got %q", got)
	}
	plan := byName["plan"]
	if plan.ColSpan != 2 || plan.DefaultValue != "free" {
		t.Fatalf("unexpected plan field: %+v", plan)
	}
	if diff := cmp.Diff([]form.Choice{{Label: "Free", Value: "free"}, {Label: "Pro", Value: "pro"}}, plan.Options); diff != "" {
		t.Fatalf("plan options mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsDriveFormValidation(t *testing.T) {
	op, err := FindOperation(context.Background(), loadAccounts(t), "createAccount")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	fields, err := Fields(op)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	f, err := form.New(fields)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	errs := f.Validate()
	want := map[string]string{
		"username":  "Username is required",
		"email":     "Email is required",
		"interests": "Select at least 1 item",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	changes := map[string]any{
		"username":  "ab",
		"email":     "ada@example.com",
		"age":       float64(12),
		"plan":      "enterprise",
		"interests": []string{"go", "cobol"},
	}
	for name, value := range changes {
		if err := f.Change(name, value); err != nil {
			t.Fatalf("change %s: %v", name, err)
		}
	}
	errs = f.Validate()
	want = map[string]string{
		"username":  "Minimum length is 3",
		"age":       "Must be at least 13",
		"plan":      "Please select a valid option",
		"interests": "Invalid selection: cobol",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsRejectsMissingBody(t *testing.T) {
	if _, err := Fields(Operation{ID: "ping"}); err == nil {
		t.Fatalf("expected error for operation without body")
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(accountsSpec))
	}))
	defer server.Close()

	loader := NewLoader(WithHTTPClient(server.Client()))

	src, err := SourceFromURL(server.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	doc, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != src.Location() {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	missing, _ := SourceFromURL(server.URL + "/missing.yaml")
	if _, err := loader.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected error for 404")
	}

	if _, err := NewLoader().Load(context.Background(), src); err == nil {
		t.Fatalf("expected error when http is disabled")
	}
}

func TestResolveSource(t *testing.T) {
	src, err := ResolveSource("https://example.com/spec.json")
	if err != nil || src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = ResolveSource("./specs/api.yaml")
	if err != nil || src.Kind() != SourceKindFile || src.Location() != "specs/api.yaml" {
		t.Fatalf("expected cleaned file source, got %v %v", src, err)
	}
	if _, err := ResolveSource("  "); err == nil {
		t.Fatalf("expected error for blank location")
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"display_name": "Display name",
		"firstName":    "First name",
		"zip-code":     "Zip code",
		"age":          "Age",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Fatalf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
