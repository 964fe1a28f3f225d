package i18n_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	t.Parallel()

	r := newOrdersResolver(t,
		i18n.WithDefaultFormatters(),
		i18n.WithTranslations("en", map[string]any{
			"cart": map[string]any{"one": "{{count}} item", "other": "{{count}} items"},
		}),
	)

	t.Run("binds locale", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(r, "fr")
		require.Equal(t, "fr", tr.Locale())
		require.Equal(t, "Gestion des commandes", tr.T("order.title"))
		require.Equal(t, "Customer", tr.T("order.customer"))
		require.Equal(t, "Total Orders: 4", tr.TranslateMessage("order.total", map[string]any{"count": 4}))
		require.Equal(t, "2 items", tr.Tn("cart", 2))
	})

	t.Run("empty locale binds active locale", func(t *testing.T) {
		t.Parallel()
		tr := r.Translator("")
		require.Equal(t, r.Locale(), tr.Locale())
	})

	t.Run("normalizes locale", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "de-DE", i18n.NewTranslator(r, "de_de").Locale())
	})

	t.Run("formats with locale conventions", func(t *testing.T) {
		t.Parallel()
		when := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)

		en := r.Translator("en")
		require.Equal(t, "1,234.5", en.FormatNumber(1234.5))
		require.Equal(t, "$1,234.50", en.FormatCurrency(1234.5))
		require.Equal(t, "03/15/2024", en.FormatDate(when))
		require.Equal(t, "03/15/2024", en.Format(i18n.HintDate, when))

		de := r.Translator("de")
		require.Equal(t, "1.234,5", de.FormatNumber(1234.5))
		require.Equal(t, "1.234,50 €", de.FormatCurrency(1234.5))
		require.Equal(t, "15.03.2024 09:05", de.FormatDateTime(when))
		require.NotNil(t, de.LocaleFormat())
	})

	t.Run("format helpers use registered formatters", func(t *testing.T) {
		t.Parallel()
		var degraded []i18n.Degradation
		r, err := i18n.New(
			i18n.WithTranslations("en", map[string]any{"order.title": "Order Management"}),
			i18n.WithFormatter(i18n.HintDate, i18n.FormatterFunc(func(_ string, v any, _ string) (string, error) {
				return v.(time.Time).Format("2006-01-02"), nil
			})),
			i18n.WithDegradedHandler(func(d i18n.Degradation) { degraded = append(degraded, d) }),
		)
		require.NoError(t, err)

		tr := r.Translator("en")
		when := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
		require.Equal(t, "2024-03-15", tr.FormatDate(when))
		require.Empty(t, degraded)

		require.Equal(t, "37.5", tr.FormatCurrency(37.5))
		require.Len(t, degraded, 1)
		require.Equal(t, i18n.HintCurrency, degraded[0].Hint)
		require.ErrorIs(t, degraded[0], i18n.ErrFormattingDegraded)
	})

	t.Run("panics without resolver", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() { i18n.NewTranslator(nil, "en") })
	})
}
