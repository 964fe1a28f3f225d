// Command i18ncheck reports translation coverage and audits pseudo-locale
// output for untranslated text.
//
//	i18ncheck [--dir locales] [--min-ratio 0.9] [--strict] [-o json]
//	i18ncheck --audit page.html [--ignore "Alice Smith"]
package main

import (
	"os"

	"github.com/dmitrymomot/polyglot/internal/i18ncheck"
)

func main() {
	os.Exit(i18ncheck.Run(os.Args[1:], nil, os.Stdin, os.Stdout, os.Stderr))
}
