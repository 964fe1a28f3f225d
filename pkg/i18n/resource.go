package i18n

import (
	"fmt"
	"maps"
	"slices"
)

// Default pseudo-locale wrappers: "order.title" renders as "[[order.title]]".
const (
	DefaultPseudoPrefix = "[["
	DefaultPseudoSuffix = "]]"
)

// ResourceSet maps translation keys to templates for one locale.
type ResourceSet interface {
	// Lookup returns the template for key and whether the set has one.
	Lookup(key string) (string, bool)
}

// StaticSet is an immutable key -> template table.
type StaticSet struct {
	entries map[string]string
	keys    []string
}

// NewStaticSet builds a StaticSet from a possibly nested map.
// Nested maps are flattened with dot-separated keys, so
// {"order": {"title": "Orders"}} is looked up as "order.title".
func NewStaticSet(translations map[string]any) *StaticSet {
	entries := flattenTranslations(translations, "")
	return &StaticSet{
		entries: entries,
		keys:    slices.Sorted(maps.Keys(entries)),
	}
}

// Lookup implements ResourceSet.
func (s *StaticSet) Lookup(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Keys returns the set's keys in lexical order. The slice must not be modified.
func (s *StaticSet) Keys() []string {
	return s.keys
}

// Len returns the number of keys in the set.
func (s *StaticSet) Len() int {
	return len(s.entries)
}

// GenerativeSet synthesizes a template for every key. It never misses.
type GenerativeSet struct {
	fn func(key string) string
}

// NewGenerativeSet wraps fn as a ResourceSet.
func NewGenerativeSet(fn func(key string) string) *GenerativeSet {
	if fn == nil {
		fn = func(key string) string { return key }
	}
	return &GenerativeSet{fn: fn}
}

// Lookup implements ResourceSet.
func (g *GenerativeSet) Lookup(key string) (string, bool) {
	return g.fn(key), true
}

// PseudoSet returns a GenerativeSet that wraps every key in prefix and suffix.
// Any text on a pseudo-localized screen that is not wrapped bypassed the resolver.
func PseudoSet(prefix, suffix string) *GenerativeSet {
	return NewGenerativeSet(func(key string) string {
		return prefix + key + suffix
	})
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		case nil:
			// an empty YAML/TOML value is treated as an untranslated key
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
