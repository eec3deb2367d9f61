package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where an OpenAPI document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a file inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }

func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL validates raw and returns a Source for an HTTP(S) endpoint.
func SourceFromURL(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("openapi: invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("openapi: unsupported URL scheme %q", parsed.Scheme)
	}
	return urlSource{raw: parsed.String()}, nil
}

// ResolveSource treats values with an http or https prefix as URLs and
// everything else as a file path.
func ResolveSource(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, fmt.Errorf("openapi: source location is required")
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return SourceFromURL(trimmed)
	}
	return SourceFromFile(trimmed), nil
}
