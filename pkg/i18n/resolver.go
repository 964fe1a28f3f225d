package i18n

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
)

// DefaultLocale is the fallback locale used when none is configured.
const DefaultLocale = "en"

// Resolver turns translation keys into display strings.
//
// Resource sets, formatters and plural rules are fixed at construction.
// The only mutable state is the active locale, swapped atomically by
// SetLocale, so a Resolver is safe for concurrent use.
type Resolver struct {
	sets        map[string]ResourceSet
	locales     []string
	fallback    string
	initial     string
	pseudo      string
	formatters  map[string]Formatter
	pluralRules map[string]PluralRule

	missingKeyHandler func(locale, key string)
	degradedHandler   func(Degradation)
	escaper           func(string) string

	active atomic.Pointer[string]

	// construction-time staging, cleared by New
	static      map[string]map[string]string
	pseudoAffix [2]string
}

// New creates a Resolver with the given options. It fails with a
// *ConfigurationError when the fallback or default locale cannot be served.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		sets:        make(map[string]ResourceSet),
		fallback:    DefaultLocale,
		formatters:  make(map[string]Formatter),
		pluralRules: make(map[string]PluralRule),
		static:      make(map[string]map[string]string),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	for locale, entries := range r.static {
		if _, custom := r.sets[locale]; custom {
			continue
		}
		r.sets[locale] = &StaticSet{entries: entries, keys: slices.Sorted(maps.Keys(entries))}
	}
	r.static = nil

	if r.pseudo != "" {
		r.sets[r.pseudo] = PseudoSet(r.pseudoAffix[0], r.pseudoAffix[1])
	}

	if _, ok := r.sets[r.fallback]; !ok {
		return nil, unknownLocale(r.fallback, "fallback locale has no resource set")
	}

	initial := r.initial
	if initial == "" {
		initial = r.fallback
	}
	if !r.HasLocale(initial) {
		return nil, unknownLocale(initial, "default locale has no resource set")
	}
	r.active.Store(&initial)

	for locale := range r.sets {
		if _, ok := r.pluralRules[locale]; !ok {
			r.pluralRules[locale] = PluralRuleFor(locale)
		}
	}

	r.locales = make([]string, 0, len(r.sets))
	r.locales = append(r.locales, r.fallback)
	for _, locale := range slices.Sorted(maps.Keys(r.sets)) {
		if locale != r.fallback {
			r.locales = append(r.locales, locale)
		}
	}

	return r, nil
}

// Resolve translates key in the active locale.
func (r *Resolver) Resolve(key string, params ...M) string {
	return r.T("", key, params...)
}

// T translates key in locale; an empty locale means the active one.
// Lookup order is the locale's set, its base language's set, the fallback
// set, and finally the key itself, which also triggers the missing-key
// handler. It never fails.
func (r *Resolver) T(locale, key string, params ...M) string {
	if key == "" {
		return ""
	}
	locale = r.requestLocale(locale)

	tmpl, ok := r.lookup(locale, key)
	if !ok {
		r.missing(locale, key)
		return key
	}
	return r.render(locale, key, tmpl, mergeParams(nil, params))
}

// Tn translates a pluralized key. The plural form is chosen by the plural
// rule of whichever locale serves the key, trying "key.<form>" and the
// broader forms before the bare key. n is available as {{count}}.
func (r *Resolver) Tn(locale, key string, n int, params ...M) string {
	if key == "" {
		return ""
	}
	locale = r.requestLocale(locale)
	merged := mergeParams(M{CountParam: n}, params)

	for _, candidate := range r.chain(locale) {
		set := r.sets[candidate]
		if _, generative := set.(*GenerativeSet); generative {
			tmpl, _ := set.Lookup(key)
			return r.render(locale, key, tmpl, merged)
		}

		form := r.pluralRule(candidate)(n)
		for _, k := range pluralCandidates(key, form, n) {
			if tmpl, ok := set.Lookup(k); ok {
				return r.render(locale, key, tmpl, merged)
			}
		}
		if tmpl, ok := set.Lookup(key); ok {
			return r.render(locale, key, tmpl, merged)
		}
	}

	r.missing(locale, key)
	return key
}

// Format renders value with the formatter registered for hint, degrading to
// plain stringification like placeholder rendering does.
func (r *Resolver) Format(locale, hint string, value any) string {
	locale = r.requestLocale(locale)
	return r.formatValue(locale, "", "", hint, value)
}

// SetLocale switches the active locale. The locale, or its base language,
// must have a resource set; otherwise a *ConfigurationError wrapping
// ErrUnknownLocale is returned and the active locale is left unchanged.
func (r *Resolver) SetLocale(locale string) error {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return unknownLocale(locale, "locale cannot be empty")
	}
	if !r.HasLocale(normalized) {
		return unknownLocale(normalized, "no resource set registered")
	}
	r.active.Store(&normalized)
	return nil
}

// Locale returns the active locale.
func (r *Resolver) Locale() string {
	return *r.active.Load()
}

// FallbackLocale returns the fallback locale.
func (r *Resolver) FallbackLocale() string {
	return r.fallback
}

// PseudoLocale returns the pseudo-locale, or "" when none is configured.
func (r *Resolver) PseudoLocale() string {
	return r.pseudo
}

// Locales returns the registered locales, fallback first, then sorted.
func (r *Resolver) Locales() []string {
	return slices.Clone(r.locales)
}

// HasLocale reports whether locale, or its base language, has a resource set.
func (r *Resolver) HasLocale(locale string) bool {
	if _, ok := r.sets[locale]; ok {
		return true
	}
	locale = NormalizeLocale(locale)
	if _, ok := r.sets[locale]; ok {
		return true
	}
	_, ok := r.sets[BaseLocale(locale)]
	return ok
}

// Set returns the resource set registered for locale.
func (r *Resolver) Set(locale string) (ResourceSet, bool) {
	set, ok := r.sets[locale]
	return set, ok
}

// Translator returns a Translator bound to locale; "" binds the active locale
// as of this call.
func (r *Resolver) Translator(locale string) *Translator {
	return NewTranslator(r, locale)
}

func (r *Resolver) requestLocale(locale string) string {
	if locale == "" {
		return r.Locale()
	}
	if _, ok := r.sets[locale]; ok {
		return locale
	}
	return NormalizeLocale(locale)
}

// chain lists the registered locales consulted for locale, in order.
func (r *Resolver) chain(locale string) []string {
	out := make([]string, 0, 3)
	if _, ok := r.sets[locale]; ok {
		out = append(out, locale)
	}
	if base := BaseLocale(locale); base != locale {
		if _, ok := r.sets[base]; ok {
			out = append(out, base)
		}
	}
	if !slices.Contains(out, r.fallback) {
		out = append(out, r.fallback)
	}
	return out
}

func (r *Resolver) lookup(locale, key string) (string, bool) {
	if set, ok := r.sets[locale]; ok {
		if tmpl, ok := set.Lookup(key); ok {
			return tmpl, true
		}
	}
	base := BaseLocale(locale)
	if base != locale {
		if set, ok := r.sets[base]; ok {
			if tmpl, ok := set.Lookup(key); ok {
				return tmpl, true
			}
		}
	}
	if locale != r.fallback && base != r.fallback {
		if tmpl, ok := r.sets[r.fallback].Lookup(key); ok {
			return tmpl, true
		}
	}
	return "", false
}

func (r *Resolver) pluralRule(locale string) PluralRule {
	if rule, ok := r.pluralRules[locale]; ok {
		return rule
	}
	return PluralRuleFor(locale)
}

func (r *Resolver) render(locale, key, tmpl string, params M) string {
	return Interpolate(tmpl, params, func(name, hint string, value any) string {
		s := r.formatValue(locale, key, name, hint, value)
		if r.escaper != nil {
			s = r.escaper(s)
		}
		return s
	})
}

func (r *Resolver) formatValue(locale, key, param, hint string, value any) string {
	if hint == "" {
		return stringify(value)
	}

	f, ok := r.formatters[hint]
	if !ok {
		r.degrade(Degradation{
			Err:    fmt.Errorf("%w: no formatter registered for hint %q", ErrFormattingDegraded, hint),
			Locale: locale, Key: key, Param: param, Hint: hint, Value: value,
		})
		return stringify(value)
	}

	out, err := f.Format(hint, value, locale)
	if err != nil {
		r.degrade(Degradation{
			Err:    fmt.Errorf("%w: %w", ErrFormattingDegraded, err),
			Locale: locale, Key: key, Param: param, Hint: hint, Value: value,
		})
		return stringify(value)
	}
	return out
}

func (r *Resolver) missing(locale, key string) {
	if r.missingKeyHandler != nil {
		r.missingKeyHandler(locale, key)
	}
}

func (r *Resolver) degrade(d Degradation) {
	if r.degradedHandler != nil {
		r.degradedHandler(d)
	}
}

func mergeParams(base M, params []M) M {
	if len(params) == 0 {
		return base
	}
	if base == nil && len(params) == 1 {
		return params[0]
	}
	merged := make(M, len(base))
	maps.Copy(merged, base)
	for _, p := range params {
		maps.Copy(merged, p)
	}
	return merged
}
