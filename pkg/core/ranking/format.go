package ranking

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

// DefaultCurrency is the ISO code all sheet amounts are recorded in
const DefaultCurrency = "TWD"

// FormatCurrency renders a whole-unit amount behind the locale's currency symbol,
// e.g. "$1,000,000" in zh-TW and "NT$1,000,000" in en.
// Unknown currency codes fall back to DefaultCurrency.
func FormatCurrency(amount float64, code string, locale model.Locale) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO(DefaultCurrency)
	}

	tag, err := language.Parse(string(locale))
	if err != nil {
		tag = language.TraditionalChinese
	}

	printer := message.NewPrinter(tag)
	return printer.Sprint(currency.Symbol(unit)) + printer.Sprint(number.Decimal(math.Round(amount), number.MaxFractionDigits(0)))
}

// FormatPercentage renders a ratio as a rounded whole percentage
func FormatPercentage(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Floor(ratio*100+0.5)))
}
