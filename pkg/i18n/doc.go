// Package i18n resolves translation keys into display strings with locale
// fallback, named parameter interpolation, pluggable format hints and a
// generative pseudo-locale.
//
// All resource sets, formatters and plural rules are fixed when the Resolver
// is built. The active locale is the only mutable state; it is swapped
// atomically, so a Resolver is safe for concurrent use.
//
// # Basic Usage
//
//	r, err := i18n.New(
//		i18n.WithFallbackLocale("en"),
//		i18n.WithTranslations("en", map[string]any{
//			"order": map[string]any{
//				"title":   "Order Management",
//				"total":   "Total Orders: {{count}}",
//				"revenue": "Total Revenue: {{revenue, number}}",
//			},
//		}),
//		i18n.WithTranslations("fr", map[string]any{
//			"order": map[string]any{"title": "Gestion des commandes"},
//		}),
//		i18n.WithDefaultFormatters(),
//	)
//
//	r.T("fr", "order.title")                            // "Gestion des commandes"
//	r.T("fr", "order.total", i18n.M{"count": 3})        // "Total Orders: 3" (fallback)
//	r.T("en", "order.revenue", i18n.M{"revenue": 1234.5}) // "Total Revenue: 1,234.5"
//	r.T("en", "order.unknown")                          // "order.unknown"
//
// # Lookup Order
//
// T consults the requested locale's set, then its base language ("fr-CA"
// falls back to "fr"), then the fallback locale. When every set lacks the key
// the key itself is returned and the missing-key handler is called.
//
// # Format Hints
//
// A placeholder may carry a hint, "{{amount, number}}", or the params may
// name a default hint under the "format" key. The hint selects a Formatter.
// When no formatter is registered for the hint, or the formatter fails, the
// value is rendered with plain stringification and a Degradation is passed to
// the degraded handler.
//
// # Pseudo-Locale
//
// WithPseudoLocale registers a GenerativeSet that wraps every key:
//
//	r, _ := i18n.New(
//		i18n.WithTranslations("en", en),
//		i18n.WithPseudoLocale("pseudo", "", ""),
//	)
//	_ = r.SetLocale("pseudo")
//	r.Resolve("order.title") // "[[order.title]]"
//
// Render a page in the pseudo-locale and pass it to FindUnwrapped to list
// every literal that bypassed the resolver.
//
// # File-Based Translations
//
// WithJSONDir, WithYAMLDir, WithTOMLDir and WithDir load "{locale}.ext" files
// at the root of an fs.FS or any files under a "{locale}/" directory.
//
// # Pluralization
//
// Tn selects "key.<form>" using CLDR cardinal rules from
// golang.org/x/text/feature/plural and injects {{count}}:
//
//	// en: {"cart": {"one": "{{count}} item", "other": "{{count}} items"}}
//	r.Tn("en", "cart", 3) // "3 items"
package i18n
