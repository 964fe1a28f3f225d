package i18n

import (
	"maps"
)

// Option configures the Resolver during construction.
type Option func(*Resolver) error

// WithFallbackLocale sets the locale consulted when a key is missing from the
// requested locale. Defaults to DefaultLocale.
func WithFallbackLocale(locale string) Option {
	return func(r *Resolver) error {
		locale = NormalizeLocale(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		r.fallback = locale
		return nil
	}
}

// WithDefaultLocale sets the initially active locale. Defaults to the
// fallback locale.
func WithDefaultLocale(locale string) Option {
	return func(r *Resolver) error {
		locale = NormalizeLocale(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		r.initial = locale
		return nil
	}
}

// WithTranslations merges a possibly nested key/template map into the static
// set of locale. Later calls for the same locale override earlier keys.
func WithTranslations(locale string, translations map[string]any) Option {
	return func(r *Resolver) error {
		locale = NormalizeLocale(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		r.addStatic(locale, flattenTranslations(translations, ""))
		return nil
	}
}

// WithResourceSet registers a custom resource set for locale. It takes
// precedence over translations added for the same locale.
func WithResourceSet(locale string, set ResourceSet) Option {
	return func(r *Resolver) error {
		locale = NormalizeLocale(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		if set == nil {
			return ErrNilResourceSet
		}
		r.sets[locale] = set
		return nil
	}
}

// WithPseudoLocale designates locale as the pseudo-locale: every key resolves
// to prefix+key+suffix. Empty wrappers default to "[[" and "]]".
func WithPseudoLocale(locale, prefix, suffix string) Option {
	return func(r *Resolver) error {
		locale = NormalizeLocale(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		if prefix == "" {
			prefix = DefaultPseudoPrefix
		}
		if suffix == "" {
			suffix = DefaultPseudoSuffix
		}
		r.pseudo = locale
		r.pseudoAffix = [2]string{prefix, suffix}
		return nil
	}
}

// WithFormatter registers the formatter for a format hint.
func WithFormatter(hint string, f Formatter) Option {
	return func(r *Resolver) error {
		if f == nil {
			return ErrNilFormatter
		}
		r.formatters[hint] = f
		return nil
	}
}

// WithDefaultFormatters registers DefaultFormatters for every hint that has
// no formatter yet.
func WithDefaultFormatters() Option {
	return func(r *Resolver) error {
		for hint, f := range DefaultFormatters() {
			if _, ok := r.formatters[hint]; !ok {
				r.formatters[hint] = f
			}
		}
		return nil
	}
}

// WithPluralRule registers a custom plural rule for a locale.
func WithPluralRule(locale string, rule PluralRule) Option {
	return func(r *Resolver) error {
		locale = NormalizeLocale(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		r.pluralRules[locale] = rule
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is found in neither
// the requested nor the fallback locale.
// Useful for detecting untranslated keys during development or monitoring gaps in translations.
func WithMissingKeyHandler(handler func(locale, key string)) Option {
	return func(r *Resolver) error {
		r.missingKeyHandler = handler
		return nil
	}
}

// WithDegradedHandler sets a handler receiving every placeholder that fell
// back to plain stringification.
func WithDegradedHandler(handler func(Degradation)) Option {
	return func(r *Resolver) error {
		r.degradedHandler = handler
		return nil
	}
}

// WithParamEscaper sets a function applied to every substituted parameter
// value, after formatting. Templates themselves are never escaped.
func WithParamEscaper(escaper func(string) string) Option {
	return func(r *Resolver) error {
		r.escaper = escaper
		return nil
	}
}

func (r *Resolver) addStatic(locale string, entries map[string]string) {
	existing, ok := r.static[locale]
	if !ok {
		existing = make(map[string]string, len(entries))
		r.static[locale] = existing
	}
	maps.Copy(existing, entries)
}
