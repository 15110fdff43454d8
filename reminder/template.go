package reminder

import (
	"fmt"
	"strings"

	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

const (
	defaultSubjectTemplate = "Payment reminder: invoice {INVOICE_NUMBER} is {DAYS_OVERDUE} overdue"

	defaultBodyTemplate = `Dear {CLIENT_NAME},

This is a reminder that invoice {INVOICE_NUMBER} for {OUTSTANDING} was due on {DUE_DATE} and is now {DAYS_OVERDUE} overdue.

Please arrange payment at your earliest convenience. If you have already paid, kindly disregard this message.

Regards,
{COMPANY_NAME}`
)

// RenderReminder substitutes the reminder placeholders for one invoice.
// Returns subject and body.
func RenderReminder(invoice *models.Invoice, daysOverdue int, companyName string) (string, string) {
	clientName := ""
	if invoice.Client != nil {
		clientName = invoice.Client.Name
	}
	dueDate := ""
	if invoice.DueDate != nil {
		dueDate = invoice.DueDate.Format("02 Jan 2006")
	}

	replacer := strings.NewReplacer(
		"{CLIENT_NAME}", clientName,
		"{INVOICE_NUMBER}", invoice.InvoiceNumber,
		"{OUTSTANDING}", utils.FormatMoney(invoice.Outstanding()),
		"{DUE_DATE}", dueDate,
		"{DAYS_OVERDUE}", fmt.Sprintf("%d days", daysOverdue),
		"{COMPANY_NAME}", companyName,
	)
	return replacer.Replace(defaultSubjectTemplate), replacer.Replace(defaultBodyTemplate)
}
