package reminder

import (
	"testing"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/shopspring/decimal"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to string, subject string, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func dueDaysAgo(now time.Time, days int) *time.Time {
	d := now.AddDate(0, 0, -days)
	return &d
}

func unpaidInvoice(now time.Time, daysOverdue int) *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: "INV-000010",
		Total:         decimal.RequireFromString("1000.00"),
		PaidAmount:    decimal.Zero,
		DueDate:       dueDaysAgo(now, daysOverdue),
		Client:        &models.Client{Name: "Acme Traders", Email: "accounts@acme.test"},
	}
}

func TestRemind_SendsAtExactThreshold(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer, companyName: "SalesDesk"}

	if err := w.remind(unpaidInvoice(now, 3), now); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].to != "accounts@acme.test" {
		t.Fatalf("wrong recipient: %s", mailer.sent[0].to)
	}
}

func TestRemind_SkipsOffThresholdDays(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer, companyName: "SalesDesk"}

	for _, days := range []int{0, 1, 2, 4, 8, 15, 31} {
		if err := w.remind(unpaidInvoice(now, days), now); err != nil {
			t.Fatalf("remind(%d days): %v", days, err)
		}
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no emails off-threshold, got %d", len(mailer.sent))
	}
}

func TestRemind_SkipsSettledInvoice(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer, companyName: "SalesDesk"}

	invoice := unpaidInvoice(now, 7)
	invoice.PaidAmount = invoice.Total
	if err := w.remind(invoice, now); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("settled invoices must not be reminded")
	}
}

func TestRemind_SkipsClientWithoutEmail(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer, companyName: "SalesDesk"}

	invoice := unpaidInvoice(now, 14)
	invoice.Client = &models.Client{Name: "No Email Co"}
	if err := w.remind(invoice, now); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("clients without email must be skipped")
	}

	invoice.Client = nil
	if err := w.remind(invoice, now); err != nil {
		t.Fatalf("remind without client: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("invoices without a client must be skipped")
	}
}

func TestRemind_FallsBackToBackupEmail(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer, companyName: "SalesDesk"}

	invoice := unpaidInvoice(now, 30)
	invoice.Client = &models.Client{Name: "Backup Co", BackupEmail: "backup@backup.test"}
	if err := w.remind(invoice, now); err != nil {
		t.Fatalf("remind: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "backup@backup.test" {
		t.Fatalf("expected send to backup email, got %+v", mailer.sent)
	}
}
