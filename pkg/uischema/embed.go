package uischema

import (
	"embed"
	"io/fs"
)

//go:embed forms/*
var embeddedForms embed.FS

// EmbeddedFS returns the bundled sample form documents. Callers may pass this
// filesystem to LoadFS.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
