package reports

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
)

func companyName() string {
	if v := os.Getenv("COMPANY_NAME"); v != "" {
		return v
	}
	return "SalesDesk"
}

func newDocument() core.Maroto {
	cfg := marotoconfig.NewBuilder().
		WithLeftMargin(10).
		WithRightMargin(10).
		Build()
	return maroto.New(cfg)
}

func headerRow(title string, number string) core.Row {
	return row.New(12).Add(
		text.NewCol(8, companyName(), props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(4, title+" "+number, props.Text{Size: 12, Align: align.Right}),
	)
}

func itemHeadingRow() core.Row {
	heading := props.Text{Size: 9, Style: fontstyle.Bold}
	return row.New(7).Add(
		text.NewCol(4, "Item", heading),
		text.NewCol(2, "HSN/SAC", heading),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
}

func itemRow(name, hsnSac string, qty, rate, subtotal decimal.Decimal) core.Row {
	cell := props.Text{Size: 9}
	money := props.Text{Size: 9, Align: align.Right}
	return row.New(6).Add(
		text.NewCol(4, name, cell),
		text.NewCol(2, hsnSac, cell),
		text.NewCol(2, qty.String(), money),
		text.NewCol(2, utils.FormatMoney(rate), money),
		text.NewCol(2, utils.FormatMoney(subtotal), money),
	)
}

func totalRow(label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(8),
		text.NewCol(2, label, props.Text{Size: 9, Style: style, Align: align.Right}),
		text.NewCol(2, utils.FormatMoney(amount), props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func totalsRows(subtotal, discount, cgst, sgst, igst, shipping, total decimal.Decimal) []core.Row {
	rows := []core.Row{totalRow("Subtotal", subtotal, false)}
	if !discount.IsZero() {
		rows = append(rows, totalRow("Discount", discount.Neg(), false))
	}
	if !cgst.IsZero() {
		rows = append(rows, totalRow("CGST", cgst, false))
	}
	if !sgst.IsZero() {
		rows = append(rows, totalRow("SGST", sgst, false))
	}
	if !igst.IsZero() {
		rows = append(rows, totalRow("IGST", igst, false))
	}
	if !shipping.IsZero() {
		rows = append(rows, totalRow("Shipping", shipping, false))
	}
	return append(rows, totalRow("Total", total, true))
}

func clientRow(client *models.Client, attentionTo string) core.Row {
	name := ""
	address := ""
	if client != nil {
		name = client.Name
		address = client.BillingAddress
	}
	if attentionTo != "" {
		name = name + " (Attn: " + attentionTo + ")"
	}
	return row.New(12).Add(
		text.NewCol(12, "Bill To: "+name+"\n"+address, props.Text{Size: 9}),
	)
}

// QuotePdf renders a fully loaded quote (items and client preloaded) to PDF
// bytes.
func QuotePdf(quote *models.Quote) ([]byte, error) {
	m := newDocument()

	m.AddRows(headerRow("Quotation", quote.QuoteNumber))
	m.AddRow(6, text.NewCol(12,
		"Date: "+quote.QuoteDate.Format("02 Jan 2006")+
			"  |  Valid for "+fmt.Sprintf("%d days", quote.ValidityDays)+
			"  |  Status: "+string(quote.CurrentStatus),
		props.Text{Size: 9}))
	m.AddRows(clientRow(quote.Client, quote.AttentionTo))

	m.AddRows(itemHeadingRow())
	for _, item := range quote.Items {
		m.AddRows(itemRow(item.Name, item.HsnSac, item.DetailQty, item.DetailUnitRate, item.DetailSubtotal))
	}
	m.AddRows(totalsRows(quote.Subtotal, quote.Discount, quote.Cgst, quote.Sgst, quote.Igst, quote.ShippingCharges, quote.Total)...)

	if quote.Notes != "" {
		m.AddRow(10, text.NewCol(12, "Notes: "+quote.Notes, props.Text{Size: 8}))
	}
	if quote.TermsAndConditions != "" {
		m.AddRow(10, text.NewCol(12, "Terms: "+quote.TermsAndConditions, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// InvoicePdf renders a fully loaded invoice (items and client preloaded) to
// PDF bytes.
func InvoicePdf(invoice *models.Invoice) ([]byte, error) {
	m := newDocument()

	m.AddRows(headerRow("Invoice", invoice.InvoiceNumber))
	dueDate := ""
	if invoice.DueDate != nil {
		dueDate = "  |  Due: " + invoice.DueDate.Format("02 Jan 2006")
	}
	m.AddRow(6, text.NewCol(12,
		"Date: "+invoice.InvoiceDate.Format("02 Jan 2006")+dueDate+
			"  |  Payment: "+string(invoice.PaymentStatus),
		props.Text{Size: 9}))
	m.AddRows(clientRow(invoice.Client, ""))

	m.AddRows(itemHeadingRow())
	for _, item := range invoice.Items {
		m.AddRows(itemRow(item.Name, item.HsnSac, item.DetailQty, item.DetailUnitRate, item.DetailSubtotal))
	}
	m.AddRows(totalsRows(invoice.Subtotal, invoice.Discount, invoice.Cgst, invoice.Sgst, invoice.Igst, invoice.ShippingCharges, invoice.Total)...)
	m.AddRows(totalRow("Paid", invoice.PaidAmount, false))
	m.AddRows(totalRow("Balance Due", invoice.Outstanding(), true))

	if invoice.MilestoneDescription != "" {
		m.AddRow(10, text.NewCol(12, "Milestone: "+invoice.MilestoneDescription, props.Text{Size: 8}))
	}
	if invoice.DeliveryNotes != "" {
		m.AddRow(10, text.NewCol(12, "Delivery: "+invoice.DeliveryNotes, props.Text{Size: 8}))
	}
	if invoice.Notes != "" {
		m.AddRow(10, text.NewCol(12, "Notes: "+invoice.Notes, props.Text{Size: 8}))
	}
	if invoice.TermsAndConditions != "" {
		m.AddRow(10, text.NewCol(12, "Terms: "+invoice.TermsAndConditions, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
