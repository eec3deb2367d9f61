package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-jsonform/pkg/form"
	pkgopenapi "github.com/goliatone/go-jsonform/pkg/openapi"
	"github.com/goliatone/go-jsonform/pkg/uischema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form documents and OpenAPI x-jsonform extensions.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

// lintFile treats files declaring forms as form documents and everything
// else as OpenAPI.
func lintFile(ctx context.Context, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if docs, err := uischema.Parse(raw, path); err == nil && len(docs) > 0 {
		return lintForms(path, docs), nil
	}

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	operations, err := pkgopenapi.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	var result []violation
	for id, op := range operations {
		if op.Body == nil {
			continue
		}
		result = append(result, lintSchema(path, []string{"operation", id, "requestBody"}, *op.Body)...)
	}
	return result, nil
}

func lintForms(file string, docs []uischema.Document) []violation {
	var result []violation
	for _, doc := range docs {
		base := []string{"form", doc.ID}
		names := make(map[string]bool, len(doc.Fields))
		for _, field := range doc.Fields {
			names[field.Name] = true
		}
		for _, field := range doc.Fields {
			for _, rule := range field.Rules {
				if rule.Field != "" && !names[rule.Field] {
					result = append(result, violation{
						file:     file,
						location: formatLocation(appendPath(base, field.Name)),
						message:  fmt.Sprintf("rule %q references unknown field %q", rule.Rule, rule.Field),
					})
				}
			}
			if field.Type == "" {
				continue
			}
			if _, ok := form.ParseKind(field.Type); !ok {
				result = append(result, violation{
					file:     file,
					location: formatLocation(appendPath(base, field.Name)),
					message:  fmt.Sprintf("unknown field type %q renders as a text input", field.Type),
				})
			}
		}
		if _, err := doc.Build(); err != nil {
			result = append(result, violation{
				file:     file,
				location: formatLocation(base),
				message:  err.Error(),
			})
		}
	}
	return result
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	result := lintExtensions(file, path, schema.Extensions)

	for _, prop := range schema.Properties {
		result = append(result, lintSchema(file, appendPath(path, "properties."+prop.Name), prop.Schema)...)
	}
	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	if len(extensions) == 0 {
		return nil
	}

	known := pkgopenapi.KnownExtensions()
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []violation
	for _, key := range keys {
		value := extensions[key]
		switch key {
		case pkgopenapi.ExtensionPrefix + "-kind":
			raw, ok := value.(string)
			if !ok {
				result = append(result, violation{file, formatLocation(path), fmt.Sprintf("%s must be a string, found %T", key, value)})
				continue
			}
			if _, ok := form.ParseKind(raw); !ok {
				result = append(result, violation{file, formatLocation(path), fmt.Sprintf("unknown kind %q", raw)})
			}
		case pkgopenapi.ExtensionPrefix + "-span":
			span, ok := value.(float64)
			if !ok || span != float64(int(span)) || span < 1 || span > 3 {
				result = append(result, violation{file, formatLocation(path), fmt.Sprintf("%s must be an integer between 1 and 3, found %v", key, value)})
			}
		default:
			result = append(result, violation{
				file:     file,
				location: formatLocation(path),
				message:  fmt.Sprintf("unsupported extension %q (supported: %s)", key, strings.Join(known, ", ")),
			})
		}
	}
	return result
}

func sortViolations(violations []violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
