package i18n

import (
	"slices"
	"strings"
	"unicode"
)

// KeyedSet is a ResourceSet that can enumerate its keys.
type KeyedSet interface {
	ResourceSet
	Keys() []string
}

// CoverageReport compares one locale's keys against the fallback locale.
type CoverageReport struct {
	Locale     string   `json:"locale"`
	Total      int      `json:"total"`
	Translated int      `json:"translated"`
	Missing    []string `json:"missing"`
	Extra      []string `json:"extra"`
}

// Complete reports whether every fallback key is translated.
func (c CoverageReport) Complete() bool {
	return len(c.Missing) == 0
}

// Ratio returns the translated share of fallback keys in [0, 1].
func (c CoverageReport) Ratio() float64 {
	if c.Total == 0 {
		return 1
	}
	return float64(c.Translated) / float64(c.Total)
}

// Coverage reports, for every enumerable non-fallback locale, which fallback
// keys it lacks and which keys it has that the fallback does not. The
// pseudo-locale and generative sets are skipped. Returns nil when the
// fallback set cannot enumerate its keys.
func Coverage(r *Resolver) []CoverageReport {
	fallbackSet, ok := r.sets[r.fallback].(KeyedSet)
	if !ok {
		return nil
	}
	reference := fallbackSet.Keys()

	var reports []CoverageReport
	for _, locale := range r.locales {
		if locale == r.fallback || locale == r.pseudo {
			continue
		}
		set, ok := r.sets[locale].(KeyedSet)
		if !ok {
			continue
		}

		keys := set.Keys()
		report := CoverageReport{
			Locale:  locale,
			Total:   len(reference),
			Missing: []string{},
			Extra:   []string{},
		}
		for _, key := range reference {
			if _, ok := set.Lookup(key); ok {
				report.Translated++
			} else {
				report.Missing = append(report.Missing, key)
			}
		}
		for _, key := range keys {
			if _, ok := fallbackSet.Lookup(key); !ok {
				report.Extra = append(report.Extra, key)
			}
		}
		slices.Sort(report.Missing)
		slices.Sort(report.Extra)
		reports = append(reports, report)
	}

	return reports
}

// FindUnwrapped returns the lines of text that sit outside prefix/suffix
// wrappers and still contain letters. Run against output rendered in the
// pseudo-locale, every result is a literal that bypassed the resolver.
// Occurrences of ignore values (user data such as customer names) are
// removed before scanning.
func FindUnwrapped(text, prefix, suffix string, ignore ...string) []string {
	if prefix == "" {
		prefix = DefaultPseudoPrefix
	}
	if suffix == "" {
		suffix = DefaultPseudoSuffix
	}

	for _, v := range ignore {
		if v != "" {
			text = strings.ReplaceAll(text, v, "\n")
		}
	}

	var outside strings.Builder
	rest := text
	for {
		start := strings.Index(rest, prefix)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+len(prefix):], suffix)
		if end < 0 {
			break
		}
		outside.WriteString(rest[:start])
		outside.WriteByte('\n')
		rest = rest[start+len(prefix)+end+len(suffix):]
	}
	outside.WriteString(rest)

	var found []string
	for line := range strings.Lines(outside.String()) {
		line = strings.TrimSpace(line)
		if strings.ContainsFunc(line, unicode.IsLetter) {
			found = append(found, line)
		}
	}
	return found
}
