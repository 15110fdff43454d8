package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateTotals_TwoLinesWithAdjustments(t *testing.T) {
	// 2 x 100.00 + 1 x 50.00, discount 10, CGST 9, SGST 9, shipping 20
	lines := []TotalsLine{
		{Qty: d("2"), UnitRate: d("100.00")},
		{Qty: d("1"), UnitRate: d("50.00")},
	}
	totals := CalculateTotals(lines, d("10"), d("9"), d("9"), d("0"), d("20"))

	if got := FormatMoney(totals.Subtotal); got != "250.00" {
		t.Fatalf("subtotal expected 250.00, got %s", got)
	}
	if got := FormatMoney(totals.Total); got != "278.00" {
		t.Fatalf("total expected 278.00, got %s", got)
	}
}

func TestCalculateTotals_Idempotent(t *testing.T) {
	lines := []TotalsLine{
		{Qty: d("3"), UnitRate: d("33.335")},
		{Qty: d("1.5"), UnitRate: d("99.99")},
	}
	first := CalculateTotals(lines, d("5"), d("1.11"), d("1.11"), d("0"), d("0"))
	second := CalculateTotals(lines, d("5"), d("1.11"), d("1.11"), d("0"), d("0"))

	if !first.Subtotal.Equal(second.Subtotal) || !first.Total.Equal(second.Total) {
		t.Fatalf("recompute changed totals: %v/%v vs %v/%v",
			first.Subtotal, first.Total, second.Subtotal, second.Total)
	}
}

func TestCalculateTotals_LineRoundingBeforeSum(t *testing.T) {
	// each line rounds to 2 places before summing: 3 x 0.333 = 1.00 per line
	lines := []TotalsLine{
		{Qty: d("3"), UnitRate: d("0.333")},
		{Qty: d("3"), UnitRate: d("0.333")},
	}
	totals := CalculateTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

	if got := FormatMoney(totals.Subtotal); got != "2.00" {
		t.Fatalf("subtotal expected 2.00, got %s", got)
	}
}

func TestCalculateTotals_DiscountLargerThanSubtotalGoesNegative(t *testing.T) {
	lines := []TotalsLine{{Qty: d("1"), UnitRate: d("50.00")}}
	totals := CalculateTotals(lines, d("100"), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

	if !totals.Total.IsNegative() {
		t.Fatalf("expected negative total, got %s", FormatMoney(totals.Total))
	}
	if got := FormatMoney(totals.Total); got != "-50.00" {
		t.Fatalf("total expected -50.00, got %s", got)
	}
}

func TestCalculateTotals_EmptyLines(t *testing.T) {
	totals := CalculateTotals(nil, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, d("20"))

	if got := FormatMoney(totals.Subtotal); got != "0.00" {
		t.Fatalf("subtotal expected 0.00, got %s", got)
	}
	if got := FormatMoney(totals.Total); got != "20.00" {
		t.Fatalf("total expected 20.00, got %s", got)
	}
}
