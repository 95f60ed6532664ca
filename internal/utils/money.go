package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a whole-unit amount with thousands separators and the
// currency symbol in front: FormatMoney("$", 12500) == "$12,500".
func FormatMoney(currency string, amount int) string {
	if amount < 0 {
		return "-" + currency + moneyPrinter.Sprintf("%d", -amount)
	}
	return currency + moneyPrinter.Sprintf("%d", amount)
}
