package i18n

import "strings"

// NormalizeLocale canonicalizes a locale identifier: surrounding space is
// trimmed, "_" becomes "-", the language subtag is lower-cased and a
// two-letter region is upper-cased ("en_us" -> "en-US").
func NormalizeLocale(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return ""
	}

	parts := strings.Split(locale, "-")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		switch len(parts[i]) {
		case 2:
			parts[i] = strings.ToUpper(parts[i])
		case 4:
			// script subtag, e.g. "Hans"
			parts[i] = strings.ToUpper(parts[i][:1]) + strings.ToLower(parts[i][1:])
		default:
			parts[i] = strings.ToLower(parts[i])
		}
	}
	return strings.Join(parts, "-")
}

// BaseLocale strips everything after the language subtag ("en-US" -> "en").
// Returns the input unchanged if there is no region.
func BaseLocale(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}
