package contract

import (
	"fmt"

	"github.com/divan/num2words"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CurrencyPrefix precedes every money amount on the document.
const CurrencyPrefix = "Rs."

// MaxTotalValue is the largest contract value accepted. AmountInWords spells
// amounts up to the billions.
const MaxTotalValue int64 = 999_999_999_999

// FormatMoney renders an amount with western thousands separators,
// e.g. 250000 -> "Rs. 250,000".
func FormatMoney(amount int64) string {
	return CurrencyPrefix + " " + humanize.Comma(amount)
}

// FormatPercent renders a percentage as a bare integer followed by "%".
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// AmountInWords spells an amount out, e.g. 250000 ->
// "Rupees Two Hundred Fifty Thousand Only".
func AmountInWords(amount int64) string {
	words := num2words.Convert(int(amount))
	return "Rupees " + cases.Title(language.English).String(words) + " Only"
}
