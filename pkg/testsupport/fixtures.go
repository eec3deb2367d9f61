package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-jsonform/pkg/openapi"
)

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MarshalGolden renders value as indented JSON with a trailing newline.
func MarshalGolden(t *testing.T, value any) []byte {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return append(payload, '\n')
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
