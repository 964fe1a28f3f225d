package i18n

import (
	"maps"
	"slices"
)

// 24-hour layouts shared by most non-US presets.
var (
	dayFirstSlash = []LocaleFormatOption{WithDateFormat("02/01/2006"), WithTimeFormat("15:04"), WithDateTimeFormat("02/01/2006 15:04")}
	dayFirstDot   = []LocaleFormatOption{WithDateFormat("02.01.2006"), WithTimeFormat("15:04"), WithDateTimeFormat("02.01.2006 15:04")}
)

// presets maps a locale to the options that build its LocaleFormat.
var presets = map[string][]LocaleFormatOption{
	"en-US": nil,
	"en-GB": append([]LocaleFormatOption{WithCurrencySymbol("£")}, dayFirstSlash...),
	"de-DE": append([]LocaleFormatOption{
		WithDecimalSeparator(","), WithThousandSeparator("."),
		WithCurrencySymbol("€"), WithCurrencyPosition("after"),
	}, dayFirstDot...),
	"fr-FR": append([]LocaleFormatOption{
		WithDecimalSeparator(","), WithThousandSeparator(" "),
		WithCurrencySymbol("€"), WithCurrencyPosition("after"),
	}, dayFirstSlash...),
	"es-ES": append([]LocaleFormatOption{
		WithDecimalSeparator(","), WithThousandSeparator("."),
		WithCurrencySymbol("€"), WithCurrencyPosition("after"),
	}, dayFirstSlash...),
	"pt-BR": append([]LocaleFormatOption{
		WithDecimalSeparator(","), WithThousandSeparator("."),
		WithCurrencySymbol("R$"),
	}, dayFirstSlash...),
	"ja-JP": {WithCurrencySymbol("¥"), WithDateFormat("2006/01/02"), WithTimeFormat("15:04"), WithDateTimeFormat("2006/01/02 15:04")},
	"zh-CN": {WithCurrencySymbol("¥"), WithDateFormat("2006-01-02"), WithTimeFormat("15:04"), WithDateTimeFormat("2006-01-02 15:04")},
	"ko-KR": {WithCurrencySymbol("₩"), WithDateFormat("2006.01.02"), WithTimeFormat("15:04"), WithDateTimeFormat("2006.01.02 15:04")},
	"pl-PL": append([]LocaleFormatOption{
		WithDecimalSeparator(","), WithThousandSeparator(" "),
		WithCurrencySymbol("zł"), WithCurrencyPosition("after"),
	}, dayFirstDot...),
	"ru-RU": append([]LocaleFormatOption{
		WithDecimalSeparator(","), WithThousandSeparator(" "),
		WithCurrencySymbol("₽"), WithCurrencyPosition("after"),
	}, dayFirstDot...),
	"ar-SA": {
		WithCurrencySymbol("SAR"), WithCurrencyPosition("after"),
		WithDateFormat("02/01/2006"), WithTimeFormat("3:04 PM"), WithDateTimeFormat("02/01/2006 3:04 PM"),
	},
}

// baseAliases resolves a bare language to its preset region.
var baseAliases = map[string]string{
	"en": "en-US",
	"de": "de-DE",
	"fr": "fr-FR",
	"es": "es-ES",
	"pt": "pt-BR",
	"ja": "ja-JP",
	"zh": "zh-CN",
	"ko": "ko-KR",
	"pl": "pl-PL",
	"ru": "ru-RU",
	"ar": "ar-SA",
}

// FormatFor returns the LocaleFormat preset for locale, trying the exact
// locale, then its base language, then en-US.
func FormatFor(locale string) *LocaleFormat {
	locale = NormalizeLocale(locale)
	if opts, ok := presets[locale]; ok {
		return NewLocaleFormat(opts...)
	}
	if alias, ok := baseAliases[BaseLocale(locale)]; ok {
		return NewLocaleFormat(presets[alias]...)
	}
	return NewLocaleFormat()
}

// PresetLocales lists the locales with a LocaleFormat preset, sorted.
func PresetLocales() []string {
	return slices.Sorted(maps.Keys(presets))
}
