package i18ncheck_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/internal/i18ncheck"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func run(t *testing.T, environ map[string]string, stdin string, args ...string) (int, string, string) {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	var stdout, stderr bytes.Buffer
	code := i18ncheck.Run(args, environ, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCoverage(t *testing.T) {
	t.Parallel()

	t.Run("text report of embedded catalog", func(t *testing.T) {
		t.Parallel()
		code, out, _ := run(t, nil, "")
		require.Equal(t, i18ncheck.ExitOK, code)
		assert.Contains(t, out, "LOCALE")
		assert.Regexp(t, `fr\s+46\s+47\s+97\.9%\s+order\.success\s+-`, out)
		assert.Contains(t, out, "measured against en")
	})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()
		code, out, _ := run(t, nil, "", "-o", "json")
		require.Equal(t, i18ncheck.ExitOK, code)

		var reports []i18n.CoverageReport
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 2)
		assert.Equal(t, "de", reports[0].Locale)
	})

	t.Run("strict fails on gaps", func(t *testing.T) {
		t.Parallel()
		code, _, errOut := run(t, nil, "", "--strict")
		require.Equal(t, i18ncheck.ExitFailed, code)
		assert.Contains(t, errOut, "fr fails the coverage check")
	})

	t.Run("min ratio from environment", func(t *testing.T) {
		t.Parallel()
		code, _, errOut := run(t, map[string]string{"I18NCHECK_MIN_RATIO": "0.9"}, "")
		require.Equal(t, i18ncheck.ExitFailed, code)
		assert.Contains(t, errOut, "de fails")
		assert.NotContains(t, errOut, "fr fails")
	})

	t.Run("locale directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"a":"A","b":"B"}`), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "it.toml"), []byte(`a = "A"`+"\n"+`c = "C"`), 0o600))

		code, out, _ := run(t, nil, "", "--dir", dir, "--min-ratio", "0.5")
		require.Equal(t, i18ncheck.ExitOK, code)
		assert.Regexp(t, `it\s+1\s+2\s+50\.0%\s+b\s+c`, out)
	})

	t.Run("bad fallback", func(t *testing.T) {
		t.Parallel()
		code, _, errOut := run(t, nil, "", "--fallback", "ja")
		require.Equal(t, i18ncheck.ExitUsage, code)
		assert.Contains(t, errOut, "i18ncheck:")
	})

	t.Run("usage errors", func(t *testing.T) {
		t.Parallel()
		code, _, _ := run(t, nil, "", "--bogus")
		require.Equal(t, i18ncheck.ExitUsage, code)
		code, _, _ = run(t, nil, "", "-o", "yaml")
		require.Equal(t, i18ncheck.ExitUsage, code)
		code, _, _ = run(t, nil, "", "--help")
		require.Equal(t, i18ncheck.ExitOK, code)
	})
}

func TestAudit(t *testing.T) {
	t.Parallel()

	t.Run("clean page", func(t *testing.T) {
		t.Parallel()
		page := "<h1>[[order.title]]</h1>\n<td>Alice</td><td>$37.50</td>"
		code, out, _ := run(t, nil, page, "--audit", "-", "--ignore", "Alice")
		require.Equal(t, i18ncheck.ExitOK, code)
		assert.Empty(t, out)
	})

	t.Run("reports literals", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<h1>[[order.title]]</h1>\n<button>Save</button>"), 0o600))

		code, out, errOut := run(t, nil, "", "--audit", path)
		require.Equal(t, i18ncheck.ExitFailed, code)
		assert.Equal(t, "Save\n", out)
		assert.Contains(t, errOut, "1 unwrapped fragment(s)")
	})

	t.Run("custom wrappers as json", func(t *testing.T) {
		t.Parallel()
		code, out, _ := run(t, nil, "<p>{a} Total</p>", "--audit", "-", "--prefix", "{", "--suffix", "}", "-o", "json")
		require.Equal(t, i18ncheck.ExitFailed, code)
		assert.JSONEq(t, `{"unwrapped":["Total"]}`, out)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		code, _, _ := run(t, nil, "", "--audit", filepath.Join(t.TempDir(), "absent.html"))
		require.Equal(t, i18ncheck.ExitUsage, code)
	})
}
