package models

import "github.com/shopspring/decimal"

func init() {
	// The REST API and the browser both expect plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

// Rupees formats an amount for display, e.g. "₹12,500.00".
func Rupees(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	grouped := groupIndian(whole)
	if d.IsNegative() {
		return "-₹" + grouped + frac
	}
	return "₹" + grouped + frac
}

// groupIndian inserts separators in the lakh/crore style: 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	out := ""
	for len(head) > 2 {
		out = "," + head[len(head)-2:] + out
		head = head[:len(head)-2]
	}
	return head + out + "," + tail
}
