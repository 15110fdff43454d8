package utils

import "github.com/shopspring/decimal"

// Money arithmetic runs on decimal.Decimal end to end; values are rounded to
// 2 places at rest and only formatted to strings at the JSON boundary.

type TotalsLine struct {
	Qty      decimal.Decimal
	UnitRate decimal.Decimal
}

type DocumentTotals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateLineSubtotal returns qty x unit rate rounded to 2 places.
func CalculateLineSubtotal(qty decimal.Decimal, unitRate decimal.Decimal) decimal.Decimal {
	return Round2(qty.Mul(unitRate))
}

// CalculateTotals recomputes subtotal and total from the current line items and
// adjustment fields:
//
//	subtotal = sum(round2(qty x unitRate))
//	total    = round2(subtotal - discount + cgst + sgst + igst + shipping)
//
// Pure function, no I/O. A discount larger than subtotal+taxes+shipping yields
// a negative total; the calculator does not clamp.
func CalculateTotals(lines []TotalsLine, discount, cgst, sgst, igst, shipping decimal.Decimal) DocumentTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(CalculateLineSubtotal(line.Qty, line.UnitRate))
	}
	subtotal = Round2(subtotal)

	total := subtotal.
		Sub(discount).
		Add(cgst).
		Add(sgst).
		Add(igst).
		Add(shipping)

	return DocumentTotals{
		Subtotal: subtotal,
		Total:    Round2(total),
	}
}

// FormatMoney renders a decimal as a fixed 2-place string for display/transit.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
