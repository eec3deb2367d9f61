package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-jsonform/pkg/validator"
)

// FileInspector turns a picked path into the metadata file rules check.
type FileInspector func(path string) (validator.File, error)

// InspectFile stats path and sniffs its MIME type from the content.
func InspectFile(path string) (validator.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return validator.File{}, fmt.Errorf("tui: inspect %q: %w", path, err)
	}
	if info.IsDir() {
		return validator.File{}, fmt.Errorf("tui: %q is a directory", path)
	}
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return validator.File{}, fmt.Errorf("tui: detect type of %q: %w", path, err)
	}
	return validator.File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Type: mime.String(),
	}, nil
}

func splitPaths(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func inspectAll(inspect FileInspector, paths []string) ([]validator.File, error) {
	files := make([]validator.File, 0, len(paths))
	for _, path := range paths {
		file, err := inspect(path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
