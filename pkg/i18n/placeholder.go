package i18n

import (
	"fmt"
	"strings"
)

// M is a shorthand for placeholder parameters.
type M map[string]any

// FormatParam is the reserved parameter carrying a default format hint for
// placeholders that do not declare one inline:
//
//	r.T("en", "order.amount", i18n.M{"amount": 1234.5, "format": "number"})
const FormatParam = "format"

// RenderFunc renders a single placeholder value. hint is empty when neither
// the placeholder nor the params declare one.
type RenderFunc func(name, hint string, value any) string

// Interpolate replaces {{name}} and {{name, hint}} placeholders in template
// with values from params rendered through render. Placeholders without a
// matching parameter remain unchanged.
func Interpolate(template string, params M, render RenderFunc) string {
	if len(params) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	if render == nil {
		render = stringifyPlaceholder
	}

	defaultHint, _ := params[FormatParam].(string)

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+2:], "}}")
		if end < 0 {
			break
		}
		end += start + 2

		b.WriteString(rest[:start])
		name, hint := splitPlaceholder(rest[start+2 : end])
		value, ok := params[name]
		if name == "" || !ok {
			b.WriteString(rest[start : end+2])
		} else {
			if hint == "" && name != FormatParam {
				hint = defaultHint
			}
			b.WriteString(render(name, hint, value))
		}
		rest = rest[end+2:]
	}
	b.WriteString(rest)

	return b.String()
}

// ReplacePlaceholders replaces placeholders using plain stringification and
// ignores format hints.
//
// Example:
//
//	template: "Hello, {{name}}! You have {{count}} messages."
//	placeholders: M{"name": "John", "count": 5}
//	returns: "Hello, John! You have 5 messages."
func ReplacePlaceholders(template string, placeholders M) string {
	return Interpolate(template, placeholders, stringifyPlaceholder)
}

func splitPlaceholder(inner string) (name, hint string) {
	name, hint, _ = strings.Cut(inner, ",")
	return strings.TrimSpace(name), strings.TrimSpace(hint)
}

func stringifyPlaceholder(_, _ string, value any) string {
	return stringify(value)
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
