// Package words renders rupee amounts in words using the Indian numbering
// system (thousand, lakh, crore), as printed on the voucher.
package words

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Rupees renders an amount as "INR <rupees> and <paise> Paise Only".
// Negative amounts are prefixed with "Minus". Paise are rounded to two places.
func Rupees(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	amount = amount.Abs().Round(2)

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var parts []string
	parts = append(parts, "INR")
	if negative {
		parts = append(parts, "Minus")
	}
	if rupees == 0 {
		parts = append(parts, "Zero")
	} else {
		parts = append(parts, integer(rupees))
	}
	if paise > 0 {
		parts = append(parts, "and", integer(paise), "Paise")
	}
	parts = append(parts, "Only")
	return strings.Join(parts, " ")
}

// integer converts a positive integer to Indian-system words.
func integer(n int64) string {
	var parts []string

	if crore := n / 1e7; crore > 0 {
		parts = append(parts, integer(crore), "Crore")
		n %= 1e7
	}
	if lakh := n / 1e5; lakh > 0 {
		parts = append(parts, upToNinetyNine(lakh), "Lakh")
		n %= 1e5
	}
	if thousand := n / 1e3; thousand > 0 {
		parts = append(parts, upToNinetyNine(thousand), "Thousand")
		n %= 1e3
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, ones[hundred], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, upToNinetyNine(n))
	}
	return strings.Join(parts, " ")
}

func upToNinetyNine(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
