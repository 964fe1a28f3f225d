package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLocale        = errors.New("i18n: locale cannot be empty")
	ErrNilResourceSet     = errors.New("i18n: resource set cannot be nil")
	ErrNilFormatter       = errors.New("i18n: formatter cannot be nil")
	ErrNilPluralRule      = errors.New("i18n: plural rule cannot be nil")
	ErrInvalidFile        = errors.New("i18n: invalid translation file")
	ErrUnknownLocale      = errors.New("i18n: unknown locale")
	ErrFormattingDegraded = errors.New("i18n: formatting degraded")
	ErrUnsupportedValue   = errors.New("i18n: unsupported value for format hint")
)

// ConfigurationError reports a locale that the resolver cannot serve.
// It is returned by New for an unusable fallback or default locale and by
// SetLocale for a locale without a registered resource set.
type ConfigurationError struct {
	Locale string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("i18n: configuration error for locale %q: %v", e.Locale, e.Err)
	}
	return fmt.Sprintf("i18n: configuration error for locale %q: %s", e.Locale, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func unknownLocale(locale, reason string) *ConfigurationError {
	return &ConfigurationError{Locale: locale, Reason: reason, Err: ErrUnknownLocale}
}

// Degradation describes a placeholder that was rendered with plain
// stringification because its format hint could not be applied.
type Degradation struct {
	Err    error
	Locale string
	Key    string
	Param  string
	Hint   string
	Value  any
}

func (d Degradation) Error() string {
	return fmt.Sprintf("%v: locale=%s key=%s param=%s hint=%s", d.Err, d.Locale, d.Key, d.Param, d.Hint)
}

func (d Degradation) Unwrap() error {
	return d.Err
}
