package reports

import (
	"context"
	"fmt"
	"io"

	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/xuri/excelize/v2"
)

// Register workbooks are plain single-sheet listings. The renderers take
// already-loaded documents and only format; they never reach back into the
// database or mutate anything.

const sheetName = "Sheet1"

func writeHeadings(f *excelize.File, headings ...string) {
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}
}

// WriteQuoteRegister streams an xlsx listing of quotes to w.
func WriteQuoteRegister(w io.Writer, quotes []*models.Quote) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	writeHeadings(f,
		"Quote Number", "Version", "Status", "Client", "Quote Date",
		"Subtotal", "Discount", "CGST", "SGST", "IGST", "Shipping", "Total",
	)

	for i, q := range quotes {
		row := fmt.Sprint(i + 2)
		clientName := ""
		if q.Client != nil {
			clientName = q.Client.Name
		}
		f.SetCellValue(sheetName, "A"+row, q.QuoteNumber)
		f.SetCellValue(sheetName, "B"+row, q.Version)
		f.SetCellValue(sheetName, "C"+row, string(q.CurrentStatus))
		f.SetCellValue(sheetName, "D"+row, clientName)
		f.SetCellValue(sheetName, "E"+row, q.QuoteDate.Format("02 Jan 2006"))
		f.SetCellValue(sheetName, "F"+row, utils.FormatMoney(q.Subtotal))
		f.SetCellValue(sheetName, "G"+row, utils.FormatMoney(q.Discount))
		f.SetCellValue(sheetName, "H"+row, utils.FormatMoney(q.Cgst))
		f.SetCellValue(sheetName, "I"+row, utils.FormatMoney(q.Sgst))
		f.SetCellValue(sheetName, "J"+row, utils.FormatMoney(q.Igst))
		f.SetCellValue(sheetName, "K"+row, utils.FormatMoney(q.ShippingCharges))
		f.SetCellValue(sheetName, "L"+row, utils.FormatMoney(q.Total))
	}

	return f.Write(w)
}

// WriteInvoiceRegister streams an xlsx listing of invoices to w.
func WriteInvoiceRegister(w io.Writer, invoices []*models.Invoice) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	writeHeadings(f,
		"Invoice Number", "Status", "Client", "Invoice Date", "Due Date",
		"Total", "Paid", "Outstanding", "Payment Status",
	)

	for i, inv := range invoices {
		row := fmt.Sprint(i + 2)
		clientName := ""
		if inv.Client != nil {
			clientName = inv.Client.Name
		}
		dueDate := ""
		if inv.DueDate != nil {
			dueDate = inv.DueDate.Format("02 Jan 2006")
		}
		f.SetCellValue(sheetName, "A"+row, inv.InvoiceNumber)
		f.SetCellValue(sheetName, "B"+row, string(inv.CurrentStatus))
		f.SetCellValue(sheetName, "C"+row, clientName)
		f.SetCellValue(sheetName, "D"+row, inv.InvoiceDate.Format("02 Jan 2006"))
		f.SetCellValue(sheetName, "E"+row, dueDate)
		f.SetCellValue(sheetName, "F"+row, utils.FormatMoney(inv.Total))
		f.SetCellValue(sheetName, "G"+row, utils.FormatMoney(inv.PaidAmount))
		f.SetCellValue(sheetName, "H"+row, utils.FormatMoney(inv.Outstanding()))
		f.SetCellValue(sheetName, "I"+row, string(inv.PaymentStatus))
	}

	return f.Write(w)
}

// LoadQuoteRegister fetches quotes with clients for the register export.
func LoadQuoteRegister(ctx context.Context, status *string) ([]*models.Quote, error) {
	return models.GetQuotes(ctx, status, nil)
}

// LoadInvoiceRegister fetches invoices with clients for the register export.
func LoadInvoiceRegister(ctx context.Context, paymentStatus *string) ([]*models.Invoice, error) {
	return models.GetInvoices(ctx, paymentStatus, nil)
}
