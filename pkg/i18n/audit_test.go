package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func TestCoverage(t *testing.T) {
	t.Parallel()

	r := newOrdersResolver(t, i18n.WithTranslations("de", map[string]any{
		"order": map[string]any{"title": "Bestellverwaltung", "legacy": "Alt"},
	}))

	reports := i18n.Coverage(r)
	require.Len(t, reports, 2)

	de := reports[0]
	require.Equal(t, "de", de.Locale)
	require.Equal(t, 10, de.Total)
	require.Equal(t, 1, de.Translated)
	require.Contains(t, de.Missing, "order.customer")
	require.NotContains(t, de.Missing, "order.title")
	require.Equal(t, []string{"order.legacy"}, de.Extra)
	require.False(t, de.Complete())
	require.InDelta(t, 0.1, de.Ratio(), 0.0001)

	fr := reports[1]
	require.Equal(t, "fr", fr.Locale)
	require.Equal(t, 2, fr.Translated)
	require.Len(t, fr.Missing, 8)
	require.Empty(t, fr.Extra)
	require.IsIncreasing(t, fr.Missing)

	t.Run("complete locale", func(t *testing.T) {
		t.Parallel()
		r, err := i18n.New(
			i18n.WithTranslations("en", map[string]any{"a": "A"}),
			i18n.WithTranslations("fr", map[string]any{"a": "À"}),
		)
		require.NoError(t, err)
		reports := i18n.Coverage(r)
		require.Len(t, reports, 1)
		require.True(t, reports[0].Complete())
		require.Equal(t, 1.0, reports[0].Ratio())
	})

	t.Run("generative fallback has no report", func(t *testing.T) {
		t.Parallel()
		r, err := i18n.New(i18n.WithResourceSet("en", i18n.NewGenerativeSet(nil)))
		require.NoError(t, err)
		require.Nil(t, i18n.Coverage(r))
	})
}

func TestFindUnwrapped(t *testing.T) {
	t.Parallel()

	t.Run("fully wrapped output is clean", func(t *testing.T) {
		t.Parallel()
		text := "[[order.title]]\n  [[order.customer]]: 3 / 1,234.50\n[[order.total]]"
		require.Empty(t, i18n.FindUnwrapped(text, "", ""))
	})

	t.Run("reports hardcoded literals", func(t *testing.T) {
		t.Parallel()
		text := "[[order.title]]\nStatus: [[order.status.new]]\nSave changes"
		require.Equal(t, []string{"Status:", "Save changes"}, i18n.FindUnwrapped(text, "[[", "]]"))
	})

	t.Run("ignores user data", func(t *testing.T) {
		t.Parallel()
		text := "[[order.customer]] Alice Smith [[order.amount]]"
		require.Empty(t, i18n.FindUnwrapped(text, "", "", "Alice Smith"))
	})

	t.Run("custom wrappers", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"Total"}, i18n.FindUnwrapped("⟦a⟧ Total", "⟦", "⟧"))
	})

	t.Run("unterminated wrapper counts as literal", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"[[order.title"}, i18n.FindUnwrapped("[[order.title", "", ""))
	})
}
