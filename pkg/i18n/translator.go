package i18n

import "time"

// Translator provides a simplified translation interface bound to one locale.
// It wraps a Resolver and eliminates the need to pass the locale to each call.
type Translator struct {
	resolver *Resolver
	format   *LocaleFormat
	locale   string
}

// NewTranslator creates a Translator for locale. An empty locale binds the
// resolver's active locale at the time of the call.
func NewTranslator(r *Resolver, locale string) *Translator {
	if r == nil {
		panic("i18n: resolver is not provided")
	}
	locale = r.requestLocale(locale)
	return &Translator{
		resolver: r,
		locale:   locale,
		format:   FormatFor(locale),
	}
}

// T translates a key in the translator's locale.
func (t *Translator) T(key string, params ...M) string {
	return t.resolver.T(t.locale, key, params...)
}

// TranslateMessage translates a key with a single parameter map.
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.resolver.T(t.locale, key, values)
}

// Tn translates a key with pluralization in the translator's locale.
func (t *Translator) Tn(key string, n int, params ...M) string {
	return t.resolver.Tn(t.locale, key, n, params...)
}

// Format renders value through the resolver's formatter for hint.
func (t *Translator) Format(hint string, value any) string {
	return t.resolver.Format(t.locale, hint, value)
}

// FormatNumber formats a number with locale-specific separators.
func (t *Translator) FormatNumber(n float64) string {
	return t.resolver.Format(t.locale, HintNumber, n)
}

// FormatDate formats a date through the "date" formatter.
func (t *Translator) FormatDate(date time.Time) string {
	return t.resolver.Format(t.locale, HintDate, date)
}

// FormatDateTime formats a datetime through the "datetime" formatter.
func (t *Translator) FormatDateTime(datetime time.Time) string {
	return t.resolver.Format(t.locale, HintDateTime, datetime)
}

// FormatCurrency formats an amount through the "currency" formatter.
func (t *Translator) FormatCurrency(amount float64) string {
	return t.resolver.Format(t.locale, HintCurrency, amount)
}

// Locale returns the translator's locale.
func (t *Translator) Locale() string {
	return t.locale
}

// LocaleFormat returns the preset conventions for the translator's locale,
// independent of the formatters registered on the resolver.
func (t *Translator) LocaleFormat() *LocaleFormat {
	return t.format
}
