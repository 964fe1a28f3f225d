package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// weightedTag is one Accept-Language entry with its quality value.
type weightedTag struct {
	tag     string
	quality float64
}

// ParseAcceptLanguage parses the Accept-Language header and returns the most
// applicable locale from available, or the first available locale when no
// entry matches.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Available: ["pl", "en", "de"]
// Returns: "en"
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if locale, ok := MatchAcceptLanguage(header, available); ok {
		return locale
	}
	return available[0]
}

// MatchAcceptLanguage returns the available locale that best satisfies the
// header. Entries are tried by descending quality. Each entry matches an
// available locale literally (case-insensitive, which is how non-BCP 47
// locales such as "pseudo" are selected) or through the
// golang.org/x/text/language matcher, so "en-US" selects "en" and "fr"
// selects "fr-CA". It reports false when nothing matches.
func MatchAcceptLanguage(header string, available []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}

	requested := parseWeightedTags(header)
	if len(requested) == 0 {
		return "", false
	}

	supported := make([]language.Tag, 0, len(available))
	index := make([]int, 0, len(available))
	for i, avail := range available {
		tag, err := language.Parse(avail)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		index = append(index, i)
	}

	var matcher language.Matcher
	if len(supported) > 0 {
		matcher = language.NewMatcher(supported)
	}

	for _, req := range requested {
		for _, avail := range available {
			if strings.EqualFold(req.tag, avail) {
				return avail, true
			}
		}

		if matcher == nil {
			continue
		}
		tag, err := language.Parse(req.tag)
		if err != nil {
			continue
		}
		if _, i, conf := matcher.Match(tag); conf != language.No {
			return available[index[i]], true
		}
	}

	return "", false
}

// parseWeightedTags parses the header into entries sorted by quality.
// Wildcards and entries with q=0 are dropped.
func parseWeightedTags(header string) []weightedTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weightedTag

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart != "" && langPart != "*" && quality > 0 {
			tags = append(tags, weightedTag{tag: langPart, quality: quality})
		}
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
