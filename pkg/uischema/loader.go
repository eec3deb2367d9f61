package uischema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and parses every JSON/YAML form document. When fsys is
// nil or holds no documents, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Document)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		docs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if _, exists := store.forms[doc.ID]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", doc.ID, path)
			}
			store.forms[doc.ID] = doc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Columns     int           `json:"columns" yaml:"columns"`
	SubmitLabel string        `json:"submitLabel" yaml:"submitLabel"`
	CancelLabel string        `json:"cancelLabel" yaml:"cancelLabel"`
	Fields      []FieldConfig `json:"fields" yaml:"fields"`
}

// Parse decodes one document file. source names the file in error messages
// and selects the decoder by extension; unknown extensions try JSON first.
func Parse(data []byte, source string) ([]Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("uischema: file %s is empty", source)
	}

	doc, err := decode(data, source)
	if err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(doc.Forms))
	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("uischema: file %s defines an empty form id", source)
		}
		normalised, err := normaliseForm(raw, id, source)
		if err != nil {
			return nil, err
		}
		out = append(out, normalised)
	}
	return out, nil
}

func decode(data []byte, source string) (documentFile, error) {
	var doc documentFile
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err == nil {
			return doc, nil
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
		}
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source string) (Document, error) {
	doc := Document{
		ID:          id,
		Source:      source,
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Columns:     raw.Columns,
		SubmitLabel: strings.TrimSpace(raw.SubmitLabel),
		CancelLabel: strings.TrimSpace(raw.CancelLabel),
		Fields:      make([]FieldConfig, 0, len(raw.Fields)),
	}
	if doc.Columns == 0 {
		doc.Columns = 1
	}
	if doc.Columns < 1 || doc.Columns > 3 {
		return Document{}, fmt.Errorf("uischema: form %q (file %s) columns must be between 1 and 3, got %d", id, source, raw.Columns)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, field := range raw.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Document{}, fmt.Errorf("uischema: form %q (file %s) field at index %d has no name", id, source, idx)
		}
		if _, exists := seen[name]; exists {
			return Document{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate field %q", id, source, name)
		}
		seen[name] = struct{}{}
		field.Name = name
		field.Type = strings.ToLower(strings.TrimSpace(field.Type))
		doc.Fields = append(doc.Fields, cloneFieldConfig(field))
	}
	return doc, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	out.Options = append([]OptionConfig(nil), cfg.Options...)
	if len(cfg.Rules) > 0 {
		out.Rules = make([]RuleConfig, len(cfg.Rules))
		for i, rule := range cfg.Rules {
			rule.Rule = strings.TrimSpace(rule.Rule)
			rule.Values = append([]any(nil), rule.Values...)
			out.Rules[i] = rule
		}
	}
	if cfg.Validation != nil {
		v := *cfg.Validation
		out.Validation = &v
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
