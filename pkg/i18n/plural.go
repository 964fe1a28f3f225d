package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralRule determines which plural form to use for a given count.
// Forms follow the Unicode CLDR category names.
type PluralRule func(n int) string

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// CountParam is injected into the params of every Tn call.
const CountParam = "count"

// PluralRuleFor returns the CLDR cardinal rule for locale, backed by
// golang.org/x/text/feature/plural. Unparseable locales get a rule that
// always answers "other".
func PluralRuleFor(locale string) PluralRule {
	tag, err := language.Parse(locale)
	if err != nil {
		return OtherPluralRule
	}
	return func(n int) string {
		if n < 0 {
			n = -n
		}
		return formName(plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0))
	}
}

// OtherPluralRule is the rule for languages without plural distinctions.
var OtherPluralRule PluralRule = func(int) string {
	return PluralOther
}

// EnglishPluralRule implements plural rules for English and similar languages:
// one (1), other (everything else).
var EnglishPluralRule PluralRule = func(n int) string {
	if n == 1 || n == -1 {
		return PluralOne
	}
	return PluralOther
}

// SupportedPluralForms returns which plural forms a rule actually uses.
// This is useful for validation when loading translations.
func SupportedPluralForms(rule PluralRule) []string {
	forms := make(map[string]bool)
	for _, n := range []int{0, 1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 20, 21, 22, 100, 101, 102, 1000, 1000000} {
		forms[rule(n)] = true
	}

	var result []string
	for _, form := range pluralOrder {
		if forms[form] {
			result = append(result, form)
		}
	}
	return result
}

var pluralOrder = []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// pluralCandidates lists the keys tried for a count, most specific first.
// An explicit "zero" form wins for n == 0 even where CLDR has no zero category.
func pluralCandidates(key, form string, n int) []string {
	out := make([]string, 0, 4)
	if n == 0 && form != PluralZero {
		out = append(out, key+"."+PluralZero)
	}
	out = append(out, key+"."+form)
	switch form {
	case PluralTwo:
		out = append(out, key+"."+PluralFew, key+"."+PluralMany)
	case PluralFew:
		out = append(out, key+"."+PluralMany)
	}
	if form != PluralOther {
		out = append(out, key+"."+PluralOther)
	}
	return out
}
