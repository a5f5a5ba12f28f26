package valueobject

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in the smallest unit of the operating currency (Rupiah).
// Prices, totals and payments are stored as whole units, so plain integer
// arithmetic is exact.
type Money int64

// CurrencySymbol is printed in front of formatted amounts
const CurrencySymbol = "Rp"

var printer = message.NewPrinter(language.Indonesian)

// NewMoney wraps an integer amount
func NewMoney(amount int64) Money {
	return Money(amount)
}

// Int64 returns the raw amount
func (m Money) Int64() int64 {
	return int64(m)
}

// Times returns the amount multiplied by a quantity
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m > 0
}

// Decimal converts the amount for aggregate math such as averages
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// String formats the amount the way receipts show it, e.g. "Rp 12.500"
func (m Money) String() string {
	if m < 0 {
		return "-" + CurrencySymbol + " " + printer.Sprintf("%d", -int64(m))
	}
	return CurrencySymbol + " " + printer.Sprintf("%d", int64(m))
}

// Sum adds up amounts
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// Average divides total by count and rounds to the given number of decimal
// places. A zero count yields zero.
func Average(total Money, count int64, places int32) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Decimal().DivRound(decimal.NewFromInt(count), places)
}
