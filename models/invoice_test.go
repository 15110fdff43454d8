package models_test

import (
	"testing"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDerivePaymentStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	cases := []struct {
		name     string
		total    string
		paid     string
		dueDate  *time.Time
		expected models.InvoicePaymentStatus
	}{
		{"fully paid", "1000.00", "1000.00", &past, models.InvoicePaymentStatusPaid},
		{"partial before due", "1000.00", "400.00", &future, models.InvoicePaymentStatusPartial},
		{"partial past due", "1000.00", "400.00", &past, models.InvoicePaymentStatusOverdue},
		{"unpaid before due", "1000.00", "0", &future, models.InvoicePaymentStatusPending},
		{"unpaid past due", "1000.00", "0", &past, models.InvoicePaymentStatusOverdue},
		{"no due date unpaid", "1000.00", "0", nil, models.InvoicePaymentStatusPending},
		{"no due date partial", "1000.00", "999.99", nil, models.InvoicePaymentStatusPartial},
		// paid wins over overdue even past the due date
		{"paid past due", "1000.00", "1000.00", &past, models.InvoicePaymentStatusPaid},
	}
	for _, tc := range cases {
		got := models.DerivePaymentStatus(money(tc.total), money(tc.paid), tc.dueDate, now)
		if got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestDueDateFor(t *testing.T) {
	from := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		terms      models.PaymentTerms
		customDays int
		expected   time.Time
	}{
		{models.PaymentTermsDueOnReceipt, 0, from},
		{models.PaymentTermsNet15, 0, from.AddDate(0, 0, 15)},
		{models.PaymentTermsNet30, 0, from.AddDate(0, 0, 30)},
		{models.PaymentTermsNet45, 0, from.AddDate(0, 0, 45)},
		{models.PaymentTermsNet60, 0, from.AddDate(0, 0, 60)},
		{models.PaymentTermsCustom, 7, from.AddDate(0, 0, 7)},
	}
	for _, tc := range cases {
		got := models.DueDateFor(tc.terms, tc.customDays, from)
		if !got.Equal(tc.expected) {
			t.Fatalf("DueDateFor(%s, %d) expected %s, got %s", tc.terms, tc.customDays, tc.expected, got)
		}
	}
}

func TestInvoiceOutstanding(t *testing.T) {
	invoice := models.Invoice{Total: money("1000.00"), PaidAmount: money("250.00")}
	if got := invoice.Outstanding(); !got.Equal(money("750.00")) {
		t.Fatalf("outstanding expected 750.00, got %s", got)
	}
}

func TestCanTransitionSalesOrder(t *testing.T) {
	cases := []struct {
		from    models.SalesOrderStatus
		to      models.SalesOrderStatus
		allowed bool
	}{
		{models.SalesOrderStatusConfirmed, models.SalesOrderStatusFulfilled, true},
		{models.SalesOrderStatusConfirmed, models.SalesOrderStatusCancelled, true},
		{models.SalesOrderStatusFulfilled, models.SalesOrderStatusClosed, true},
		{models.SalesOrderStatusConfirmed, models.SalesOrderStatusClosed, false},
		{models.SalesOrderStatusFulfilled, models.SalesOrderStatusCancelled, false},
		{models.SalesOrderStatusClosed, models.SalesOrderStatusConfirmed, false},
		{models.SalesOrderStatusCancelled, models.SalesOrderStatusFulfilled, false},
	}
	for _, tc := range cases {
		if got := models.CanTransitionSalesOrder(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("CanTransitionSalesOrder(%s, %s) expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestCanTransitionPurchaseOrder(t *testing.T) {
	cases := []struct {
		from    models.PurchaseOrderStatus
		to      models.PurchaseOrderStatus
		allowed bool
	}{
		{models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusIssued, true},
		{models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusCancelled, true},
		{models.PurchaseOrderStatusIssued, models.PurchaseOrderStatusReceived, true},
		{models.PurchaseOrderStatusIssued, models.PurchaseOrderStatusCancelled, true},
		{models.PurchaseOrderStatusReceived, models.PurchaseOrderStatusClosed, true},
		{models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusReceived, false},
		{models.PurchaseOrderStatusReceived, models.PurchaseOrderStatusCancelled, false},
		{models.PurchaseOrderStatusClosed, models.PurchaseOrderStatusDraft, false},
	}
	for _, tc := range cases {
		if got := models.CanTransitionPurchaseOrder(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("CanTransitionPurchaseOrder(%s, %s) expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
