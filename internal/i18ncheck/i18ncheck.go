// Package i18ncheck implements the i18ncheck command: a translation coverage
// report against the fallback locale and an audit of pseudo-locale output
// for text that bypassed the resolver.
package i18ncheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/polyglot/internal/app"
	"github.com/dmitrymomot/polyglot/internal/config"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
	"github.com/dmitrymomot/polyglot/pkg/sanitizer"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

// envPrefix maps a flag name such as "min-ratio" to I18NCHECK_MIN_RATIO.
const envPrefix = "I18NCHECK_"

type options struct {
	dir      string
	fallback string
	format   string
	minRatio float64
	strict   bool
	audit    string
	prefix   string
	suffix   string
	ignore   []string
	html     bool
}

// Run executes the command and returns its exit code. environ supplies flag
// defaults (I18NCHECK_*); a nil environ reads the process environment.
func Run(args []string, environ map[string]string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := pflag.NewFlagSet("i18ncheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.dir, "dir", "", "directory of locale files (default: embedded catalog)")
	fs.StringVar(&opts.fallback, "fallback", i18n.DefaultLocale, "fallback locale coverage is measured against")
	fs.StringVarP(&opts.format, "format", "o", "text", "output format: text or json")
	fs.Float64Var(&opts.minRatio, "min-ratio", 0, "fail when a locale translates less than this share of keys (0..1)")
	fs.BoolVar(&opts.strict, "strict", false, "fail on any missing or extra key")
	fs.StringVar(&opts.audit, "audit", "", "pseudo-locale output to audit for unwrapped text (\"-\" reads stdin)")
	fs.StringVar(&opts.prefix, "prefix", "", "pseudo wrapper prefix (default \"[[\")")
	fs.StringVar(&opts.suffix, "suffix", "", "pseudo wrapper suffix (default \"]]\")")
	fs.StringSliceVar(&opts.ignore, "ignore", nil, "values to ignore in the audit, e.g. user data")
	fs.BoolVar(&opts.html, "html", true, "strip markup from audited output")

	loadEnv(fs, environ)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if opts.format != "text" && opts.format != "json" {
		fmt.Fprintf(stderr, "i18ncheck: unknown format %q\n", opts.format)
		return ExitUsage
	}

	if opts.audit != "" {
		return runAudit(opts, stdin, stdout, stderr)
	}
	return runCoverage(opts, stdout, stderr)
}

// loadEnv sets every flag that has a matching environment variable.
func loadEnv(fs *pflag.FlagSet, environ map[string]string) {
	lookup := os.LookupEnv
	if environ != nil {
		lookup = func(key string) (string, bool) {
			v, ok := environ[key]
			return v, ok
		}
	}
	fs.VisitAll(func(f *pflag.Flag) {
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v, ok := lookup(key); ok {
			_ = f.Value.Set(v)
		}
	})
}

func runCoverage(opts options, stdout, stderr io.Writer) int {
	r, err := app.NewResolver(config.I18n{
		FallbackLocale: opts.fallback,
		LocalesDir:     opts.dir,
	}, logger.NewNope())
	if err != nil {
		fmt.Fprintf(stderr, "i18ncheck: %v\n", err)
		return ExitUsage
	}

	reports := i18n.Coverage(r)
	if reports == nil {
		reports = []i18n.CoverageReport{}
	}

	if opts.format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(reports)
	} else {
		writeCoverageTable(stdout, r.FallbackLocale(), reports)
	}

	code := ExitOK
	for _, rep := range reports {
		if rep.Ratio() < opts.minRatio || (opts.strict && !rep.Complete()) {
			fmt.Fprintf(stderr, "i18ncheck: %s fails the coverage check (%.1f%%, %d extra)\n",
				rep.Locale, rep.Ratio()*100, len(rep.Extra))
			code = ExitFailed
		}
	}
	return code
}

func writeCoverageTable(w io.Writer, fallback string, reports []i18n.CoverageReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "LOCALE\tTRANSLATED\tTOTAL\tCOVERAGE\tMISSING\tEXTRA\n")
	for _, rep := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%s\t%s\n",
			rep.Locale, rep.Translated, rep.Total, rep.Ratio()*100,
			list(rep.Missing), list(rep.Extra))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "measured against %s\n", fallback)
}

func list(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, ",")
}

func runAudit(opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		data []byte
		err  error
	)
	if opts.audit == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(opts.audit)
	}
	if err != nil {
		fmt.Fprintf(stderr, "i18ncheck: %v\n", err)
		return ExitUsage
	}

	text := string(data)
	if opts.html {
		text = sanitizer.StripTags(text)
	}
	found := i18n.FindUnwrapped(text, opts.prefix, opts.suffix, opts.ignore...)

	if opts.format == "json" {
		if found == nil {
			found = []string{}
		}
		_ = json.NewEncoder(stdout).Encode(map[string]any{"unwrapped": found})
	} else {
		for _, line := range found {
			fmt.Fprintln(stdout, line)
		}
	}

	if len(found) > 0 {
		fmt.Fprintf(stderr, "i18ncheck: %d unwrapped fragment(s)\n", len(found))
		return ExitFailed
	}
	return ExitOK
}
