package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type unmarshalFunc func(data []byte, v any) error

var (
	jsonUnmarshal unmarshalFunc = json.Unmarshal
	yamlUnmarshal unmarshalFunc = yaml.Unmarshal
	tomlUnmarshal unmarshalFunc = toml.Unmarshal
)

// WithJSONDir returns an Option that loads translations from JSON files in an fs.FS.
// A file is either {locale}.json at the root or any .json file inside a
// {locale}/ directory; all files of one locale are merged flat.
//
// Example structure:
//
//	en.json
//	fr/orders.json
//	fr/payments.json
func WithJSONDir(fsys fs.FS) Option {
	return func(r *Resolver) error {
		return loadDir(r, fsys, map[string]unmarshalFunc{".json": jsonUnmarshal})
	}
}

// WithYAMLDir returns an Option that loads translations from .yaml and .yml
// files in an fs.FS, with the same layout as WithJSONDir.
func WithYAMLDir(fsys fs.FS) Option {
	return func(r *Resolver) error {
		return loadDir(r, fsys, map[string]unmarshalFunc{".yaml": yamlUnmarshal, ".yml": yamlUnmarshal})
	}
}

// WithTOMLDir returns an Option that loads translations from .toml files in
// an fs.FS, with the same layout as WithJSONDir.
func WithTOMLDir(fsys fs.FS) Option {
	return func(r *Resolver) error {
		return loadDir(r, fsys, map[string]unmarshalFunc{".toml": tomlUnmarshal})
	}
}

// WithDir loads JSON, YAML and TOML files from fsys in one pass.
func WithDir(fsys fs.FS) Option {
	return func(r *Resolver) error {
		return loadDir(r, fsys, map[string]unmarshalFunc{
			".json": jsonUnmarshal,
			".yaml": yamlUnmarshal,
			".yml":  yamlUnmarshal,
			".toml": tomlUnmarshal,
		})
	}
}

func loadDir(r *Resolver, fsys fs.FS, decoders map[string]unmarshalFunc) error {
	if fsys == nil {
		return fmt.Errorf("%w: nil file system", ErrInvalidFile)
	}

	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// Case-insensitive comparison handles both .YAML and .yaml extensions across different systems
		unmarshal, ok := decoders[strings.ToLower(path.Ext(filePath))]
		if !ok {
			return nil
		}

		locale := fileLocale(filePath)
		if locale == "" {
			return fmt.Errorf("%w: cannot derive locale from %q", ErrInvalidFile, filePath)
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var translations map[string]any
		if err := unmarshal(data, &translations); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		r.addStatic(locale, flattenTranslations(translations, ""))
		return nil
	})
}

// fileLocale derives the locale from "{locale}.ext" or "{locale}/.../file.ext".
func fileLocale(filePath string) string {
	if dir, _, found := strings.Cut(filePath, "/"); found {
		return NormalizeLocale(dir)
	}
	return NormalizeLocale(strings.TrimSuffix(filePath, path.Ext(filePath)))
}
