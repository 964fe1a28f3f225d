package i18n

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format hints understood by the default formatters.
const (
	HintNumber   = "number"
	HintDate     = "date"
	HintTime     = "time"
	HintDateTime = "datetime"
	HintCurrency = "currency"
	HintPercent  = "percent"
)

// Formatter renders a raw value for a format hint in a locale.
type Formatter interface {
	Format(hint string, value any, locale string) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(hint string, value any, locale string) (string, error)

// Format implements Formatter.
func (f FormatterFunc) Format(hint string, value any, locale string) (string, error) {
	return f(hint, value, locale)
}

// DefaultFormatters returns the built-in hint registry: "number" through
// golang.org/x/text with CLDR separators, and "date", "time", "datetime",
// "currency" and "percent" through the locale format presets.
func DefaultFormatters() map[string]Formatter {
	lf := LocaleFormatter{}
	return map[string]Formatter{
		HintNumber:   NumberFormatter{MaxFractionDigits: 3},
		HintDate:     lf,
		HintTime:     lf,
		HintDateTime: lf,
		HintCurrency: lf,
		HintPercent:  lf,
	}
}

// NumberFormatter formats numeric values with locale-aware grouping and
// decimal separators ("1,234.5" in en, "1.234,5" in de).
type NumberFormatter struct {
	// MaxFractionDigits caps the rendered fraction digits. Zero keeps the
	// locale's default pattern.
	MaxFractionDigits int
}

// Format implements Formatter.
func (f NumberFormatter) Format(_ string, value any, locale string) (string, error) {
	n, err := toNumber(value)
	if err != nil {
		return "", err
	}

	var opts []number.Option
	if f.MaxFractionDigits > 0 {
		opts = append(opts, number.MaxFractionDigits(f.MaxFractionDigits))
	}

	p := message.NewPrinter(languageTag(locale))
	return p.Sprintf("%v", number.Decimal(n, opts...)), nil
}

// LocaleFormatter formats dates, times, currency amounts and percentages with
// the LocaleFormat registered for the locale. Formats overrides the presets.
type LocaleFormatter struct {
	Formats map[string]*LocaleFormat
}

// Format implements Formatter.
func (f LocaleFormatter) Format(hint string, value any, locale string) (string, error) {
	lf := f.formatFor(locale)

	switch hint {
	case HintDate, HintTime, HintDateTime:
		t, err := toTime(value)
		if err != nil {
			return "", err
		}
		switch hint {
		case HintTime:
			return lf.FormatTime(t), nil
		case HintDateTime:
			return lf.FormatDateTime(t), nil
		default:
			return lf.FormatDate(t), nil
		}
	case HintCurrency:
		n, err := toFinite(value)
		if err != nil {
			return "", err
		}
		return lf.FormatCurrency(n), nil
	case HintPercent:
		n, err := toFinite(value)
		if err != nil {
			return "", err
		}
		return lf.FormatPercent(n), nil
	default:
		return "", fmt.Errorf("%w: hint %q", ErrUnsupportedValue, hint)
	}
}

func (f LocaleFormatter) formatFor(locale string) *LocaleFormat {
	if f.Formats != nil {
		if lf, ok := f.Formats[locale]; ok {
			return lf
		}
		if lf, ok := f.Formats[BaseLocale(locale)]; ok {
			return lf
		}
	}
	return FormatFor(locale)
}

// LocaleFormat contains formatting rules and methods for locale-specific formatting.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	decimalSeparator  string
	thousandSeparator string
	currencySymbol    string
	currencyPosition  string // "before" or "after"
	percentSymbol     string
	dateFormat        string
	timeFormat        string
	dateTimeFormat    string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a new LocaleFormat with the given options.
// If no options are provided, it defaults to US English formatting.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSeparator:  ".",
		thousandSeparator: ",",
		currencySymbol:    "$",
		currencyPosition:  "before",
		percentSymbol:     "%",
		dateFormat:        "01/02/2006",
		timeFormat:        "3:04 PM",
		dateTimeFormat:    "01/02/2006 3:04 PM",
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDecimalSeparator sets the decimal separator character.
func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.decimalSeparator = sep
	}
}

// WithThousandSeparator sets the thousand separator character.
func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.thousandSeparator = sep
	}
}

// WithCurrencySymbol sets the currency symbol.
func WithCurrencySymbol(symbol string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencySymbol = symbol
	}
}

// WithCurrencyPosition sets the currency position ("before" or "after").
func WithCurrencyPosition(pos string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if pos == "before" || pos == "after" {
			lf.currencyPosition = pos
		}
	}
}

// WithDateFormat sets the date layout (Go time layout).
func WithDateFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateFormat = format
	}
}

// WithTimeFormat sets the time layout (Go time layout).
func WithTimeFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeFormat = format
	}
}

// WithDateTimeFormat sets the datetime layout (Go time layout).
func WithDateTimeFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateTimeFormat = format
	}
}

// FormatCurrency formats an amount with two decimals and the locale's symbol.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	// Grouped from the decimal string; int64 cents would overflow past ~9.2e16.
	whole, cents, _ := strings.Cut(strconv.FormatFloat(amount, 'f', 2, 64), ".")
	numStr := lf.groupDigits(whole) + lf.decimalSeparator + cents

	var result string
	switch {
	case lf.currencyPosition == "after":
		result = numStr + " " + lf.currencySymbol
	case tightSymbol(lf.currencySymbol):
		result = lf.currencySymbol + numStr
	default:
		result = lf.currencySymbol + " " + numStr
	}

	if negative {
		result = "-" + result
	}

	return result
}

// FormatPercent formats a ratio as a percentage; 0.5 renders as "50%".
func (lf *LocaleFormat) FormatPercent(n float64) string {
	percentage := math.Round(n*1000) / 10
	negative := percentage < 0
	if negative {
		percentage = -percentage
	}

	whole, tenths, _ := strings.Cut(strconv.FormatFloat(percentage, 'f', 1, 64), ".")
	result := whole
	if tenths != "0" {
		result += lf.decimalSeparator + tenths
	}
	if negative {
		result = "-" + result
	}

	return result + lf.percentSymbol
}

// FormatDate formats a date with the locale's date layout.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateFormat)
}

// FormatTime formats a time with the locale's time layout.
func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(lf.timeFormat)
}

// FormatDateTime formats a datetime with the locale's datetime layout.
func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(lf.dateTimeFormat)
}

// DateLayout returns the Go time layout used for dates.
func (lf *LocaleFormat) DateLayout() string {
	return lf.dateFormat
}

// groupDigits inserts the thousand separator into a string of digits.
func (lf *LocaleFormat) groupDigits(str string) string {
	if len(str) <= 3 {
		return str
	}

	var b strings.Builder
	lead := len(str) % 3
	if lead > 0 {
		b.WriteString(str[:lead])
	}
	for i := lead; i < len(str); i += 3 {
		if b.Len() > 0 {
			b.WriteString(lf.thousandSeparator)
		}
		b.WriteString(str[i : i+3])
	}
	return b.String()
}

func tightSymbol(symbol string) bool {
	return symbol == "¥" || symbol == "£" || symbol == "₩" || strings.HasSuffix(symbol, "$")
}

func languageTag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und
	}
	return tag
}

func toFinite(value any) (float64, error) {
	n, err := toNumber(value)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrUnsupportedValue, n)
	}
	return n, nil
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrUnsupportedValue, v)
		}
		return n, nil
	case interface{ Float64() (float64, error) }:
		// json.Number
		n, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrUnsupportedValue, value)
	}
}

func toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: nil time", ErrUnsupportedValue)
		}
		return *v, nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrUnsupportedValue, v)
	default:
		return time.Time{}, fmt.Errorf("%w: %T is not a date", ErrUnsupportedValue, value)
	}
}
