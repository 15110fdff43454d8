package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/shopspring/decimal"
)

func TestShouldRemind(t *testing.T) {
	for _, days := range []int{3, 7, 14, 30} {
		if !ShouldRemind(days) {
			t.Fatalf("expected reminder at exactly %d days", days)
		}
	}
	// exact thresholds only
	for _, days := range []int{0, 1, 2, 4, 6, 8, 13, 15, 29, 31, 60, -3} {
		if ShouldRemind(days) {
			t.Fatalf("unexpected reminder at %d days", days)
		}
	}
}

func TestRenderReminder_Substitution(t *testing.T) {
	dueDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	invoice := &models.Invoice{
		InvoiceNumber: "INV-000042",
		Total:         decimal.RequireFromString("1500.00"),
		PaidAmount:    decimal.RequireFromString("500.00"),
		DueDate:       &dueDate,
		Client:        &models.Client{Name: "Acme Traders"},
	}

	subject, body := RenderReminder(invoice, 3, "SalesDesk")

	if !strings.Contains(subject, "INV-000042") {
		t.Fatalf("subject missing invoice number: %q", subject)
	}
	if !strings.Contains(subject, "3 days") {
		t.Fatalf("subject missing days overdue: %q", subject)
	}
	for _, want := range []string{"Acme Traders", "INV-000042", "1000.00", "01 May 2026", "3 days", "SalesDesk"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "{") {
		t.Fatalf("body has unsubstituted placeholders:\n%s", body)
	}
}

func TestRenderReminder_NoClient(t *testing.T) {
	dueDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	invoice := &models.Invoice{
		InvoiceNumber: "INV-000001",
		Total:         decimal.RequireFromString("100.00"),
		DueDate:       &dueDate,
	}

	_, body := RenderReminder(invoice, 7, "SalesDesk")
	if strings.Contains(body, "{CLIENT_NAME}") {
		t.Fatalf("placeholder must be substituted even without a client:\n%s", body)
	}
}
