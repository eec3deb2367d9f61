package validator

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
)

const bytesPerMB = 1024 * 1024

// File describes an uploaded or picked file. File fields carry []File.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// FileRules builds rules for file fields.
type FileRules struct {
	core[*FileRules]
}

// Files starts a file rule builder.
func Files() *FileRules {
	f := &FileRules{}
	f.core = newCore(f)
	return f
}

// MaxSize rejects files larger than limit bytes.
func (f *FileRules) MaxSize(limit int64, message ...string) *FileRules {
	custom := messageOr(message, "")
	threshold := strconv.FormatFloat(float64(limit)/bytesPerMB, 'f', -1, 64)
	return f.check("maxSize", func(value any) (bool, string) {
		var oversized []string
		for _, file := range toFiles(value) {
			if file.Size > limit {
				oversized = append(oversized, file.Name)
			}
		}
		if len(oversized) == 0 {
			return true, ""
		}
		if custom != "" {
			return false, custom
		}
		return false, fmt.Sprintf("File size must not exceed %sMB: %s", threshold, strings.Join(oversized, ", "))
	})
}

// AllowedTypes restricts MIME types. Entries such as "image/*" match any
// subtype.
func (f *FileRules) AllowedTypes(types []string, message ...string) *FileRules {
	allowed := make([]string, 0, len(types))
	for _, t := range types {
		if trimmed := strings.ToLower(strings.TrimSpace(t)); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}
	msg := messageOr(message, "File type must be one of: "+strings.Join(allowed, ", "))
	return f.check("allowedTypes", func(value any) (bool, string) {
		for _, file := range toFiles(value) {
			if !mimeAllowed(file.Type, allowed) {
				return false, msg
			}
		}
		return true, ""
	})
}

// AllowedExtensions restricts file name extensions, ignoring case and a
// leading dot.
func (f *FileRules) AllowedExtensions(extensions []string, message ...string) *FileRules {
	allowed := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if normalized := normalizeExtension(ext); normalized != "" {
			allowed = append(allowed, normalized)
		}
	}
	msg := messageOr(message, "File extension must be one of: "+strings.Join(allowed, ", "))
	return f.check("allowedExtensions", func(value any) (bool, string) {
		for _, file := range toFiles(value) {
			if !slices.Contains(allowed, normalizeExtension(path.Ext(file.Name))) {
				return false, msg
			}
		}
		return true, ""
	})
}

// MaxFiles allows at most n files.
func (f *FileRules) MaxFiles(n int, message ...string) *FileRules {
	msg := messageOr(message, fmt.Sprintf("You can upload at most %d %s", n, plural(n, "file", "files")))
	return f.check("maxFiles", func(value any) (bool, string) {
		if len(toFiles(value)) > n {
			return false, msg
		}
		return true, ""
	})
}

// MinFiles requires at least n files.
func (f *FileRules) MinFiles(n int, message ...string) *FileRules {
	msg := messageOr(message, fmt.Sprintf("Please upload at least %d %s", n, plural(n, "file", "files")))
	return f.check("minFiles", func(value any) (bool, string) {
		if len(toFiles(value)) < n {
			return false, msg
		}
		return true, ""
	})
}

// Compile returns the accumulated rules.
func (f *FileRules) Compile() RuleSet {
	return f.compile()
}

func toFiles(value any) []File {
	switch v := value.(type) {
	case []File:
		return v
	case File:
		return []File{v}
	case *File:
		if v == nil {
			return nil
		}
		return []File{*v}
	}
	return nil
}

func mimeAllowed(mime string, allowed []string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	for _, candidate := range allowed {
		if candidate == mime {
			return true
		}
		if prefix, ok := strings.CutSuffix(candidate, "/*"); ok {
			if strings.HasPrefix(mime, prefix+"/") {
				return true
			}
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}
