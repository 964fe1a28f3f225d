// Package locales embeds the order desk translations: en.yaml, fr.toml and
// de.json, one file per locale.
package locales

import (
	"embed"
	"io/fs"
)

//go:embed *.yaml *.toml *.json
var files embed.FS

// FS returns the embedded locale files, laid out for i18n.WithDir.
func FS() fs.FS {
	return files
}
