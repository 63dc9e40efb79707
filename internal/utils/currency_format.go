package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount in currencyCode for display, e.g. 1500 INR -> "₹1,500.00".
// Unknown codes fall back to the plain amount at two places.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(strings.ToUpper(currencyCode))
	if cur == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}
