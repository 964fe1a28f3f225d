// Package sanitizer cleans user-supplied text before it reaches translated
// output, built on bluemonday policies.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// order notes
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements("p", "br", "strong", "b", "em", "i", "ul", "ol", "li", "code", "pre", "blockquote")
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripTags removes all markup and returns unescaped plain text with
// surrounding whitespace trimmed. Script and style contents are dropped.
//
//	StripTags(`<b>Tom</b> &amp; Jerry<script>x()</script>`) // "Tom & Jerry"
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// EscapeParam strips markup from an interpolated parameter value so that
// user data cannot inject tags into a translated message. The result is
// plain text; HTML escaping is left to the output layer.
func EscapeParam(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return StripTags(s)
}

// SanitizeHTML keeps the formatting tags allowed in order notes and drops
// scripts, event handlers and javascript: URLs. Links get rel="nofollow".
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}
