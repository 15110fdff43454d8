package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoices are never created as blank documents. They come into existence by
// converting an approved quote or a fulfilled sales order, or as a milestone
// child under a master invoice.
type Invoice struct {
	ID                   int                  `gorm:"primary_key" json:"id"`
	InvoiceNumber        string               `gorm:"size:30;uniqueIndex;not null" json:"invoice_number"`
	QuoteId              *int                 `gorm:"index" json:"quote_id"`
	SalesOrderId         *int                 `gorm:"index" json:"sales_order_id"`
	ParentInvoiceId      *int                 `gorm:"index" json:"parent_invoice_id"`
	IsMaster             *bool                `gorm:"not null;default:true" json:"is_master"`
	ClientId             int                  `gorm:"not null;index" json:"client_id"`
	Client               *Client              `json:"client,omitempty"`
	CurrentStatus        InvoiceStatus        `gorm:"size:50;not null;default:'Draft'" json:"current_status"`
	InvoiceDate          time.Time            `gorm:"not null" json:"invoice_date"`
	PaymentTerms         PaymentTerms         `gorm:"size:20;not null;default:'Net30'" json:"payment_terms"`
	CustomDays           int                  `json:"custom_days"`
	DueDate              *time.Time           `json:"due_date"`
	Subtotal             decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	Discount             decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"discount"`
	Cgst                 decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"cgst"`
	Sgst                 decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"sgst"`
	Igst                 decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"igst"`
	ShippingCharges      decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"shipping_charges"`
	Total                decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"total"`
	PaymentStatus        InvoicePaymentStatus `gorm:"size:20;not null;default:'Pending'" json:"payment_status"`
	PaidAmount           decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"paid_amount"`
	Notes                string               `gorm:"type:text" json:"notes"`
	TermsAndConditions   string               `gorm:"type:text" json:"terms_and_conditions"`
	DeliveryNotes        string               `gorm:"type:text" json:"delivery_notes"`
	MilestoneDescription string               `gorm:"type:text" json:"milestone_description"`
	Items                []InvoiceItem        `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedBy            int                  `json:"created_by"`
	CreatedAt            time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

type InvoiceItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	InvoiceId      int             `gorm:"not null;index" json:"invoice_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	HsnSac         string          `gorm:"size:20" json:"hsn_sac"`
	DetailQty      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_qty"`
	DetailUnitRate decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_unit_rate"`
	DetailSubtotal decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_subtotal"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// ConvertToInvoiceInput carries the payment terms for the new invoice. Terms
// default to Net30 when empty.
type ConvertToInvoiceInput struct {
	PaymentTerms string `json:"payment_terms"`
	CustomDays   int    `json:"custom_days"`
}

func (input *ConvertToInvoiceInput) resolveTerms() (PaymentTerms, int, error) {
	if input == nil || input.PaymentTerms == "" {
		return PaymentTermsNet30, 0, nil
	}
	terms, err := ParsePaymentTerms(input.PaymentTerms)
	if err != nil {
		return "", 0, utils.ValidationError(err.Error())
	}
	if terms == PaymentTermsCustom && input.CustomDays <= 0 {
		return "", 0, utils.ValidationError("custom payment terms require custom_days > 0")
	}
	return terms, input.CustomDays, nil
}

// DueDateFor computes the due date from a payment-terms offset.
func DueDateFor(terms PaymentTerms, customDays int, from time.Time) time.Time {
	days := 0
	switch terms {
	case PaymentTermsNet15:
		days = 15
	case PaymentTermsNet30:
		days = 30
	case PaymentTermsNet45:
		days = 45
	case PaymentTermsNet60:
		days = 60
	case PaymentTermsDueOnReceipt:
		days = 0
	case PaymentTermsCustom:
		days = customDays
	}
	return from.AddDate(0, 0, days)
}

// DerivePaymentStatus computes the payment status from amounts and due date:
// Paid exactly when paid == total, Overdue when underpaid past the due date,
// Partial when some payment is in, Pending otherwise.
func DerivePaymentStatus(total, paid decimal.Decimal, dueDate *time.Time, now time.Time) InvoicePaymentStatus {
	if paid.Equal(total) {
		return InvoicePaymentStatusPaid
	}
	if dueDate != nil && now.After(*dueDate) {
		return InvoicePaymentStatusOverdue
	}
	if paid.IsPositive() {
		return InvoicePaymentStatusPartial
	}
	return InvoicePaymentStatusPending
}

func (invoice *Invoice) refreshPaymentStatus(now time.Time) {
	invoice.PaymentStatus = DerivePaymentStatus(invoice.Total, invoice.PaidAmount, invoice.DueDate, now)
}

// Outstanding returns total - paidAmount.
func (invoice *Invoice) Outstanding() decimal.Decimal {
	return invoice.Total.Sub(invoice.PaidAmount)
}

func (invoice *Invoice) applyTotals() {
	lines := make([]utils.TotalsLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, utils.TotalsLine{Qty: item.DetailQty, UnitRate: item.DetailUnitRate})
	}
	totals := utils.CalculateTotals(lines, invoice.Discount, invoice.Cgst, invoice.Sgst, invoice.Igst, invoice.ShippingCharges)
	invoice.Subtotal = totals.Subtotal
	invoice.Total = totals.Total
}

func copyQuoteItems(items []QuoteItem) []InvoiceItem {
	result := make([]InvoiceItem, 0, len(items))
	for _, item := range items {
		result = append(result, InvoiceItem{
			Name:           item.Name,
			Description:    item.Description,
			HsnSac:         item.HsnSac,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
			DetailSubtotal: item.DetailSubtotal,
		})
	}
	return result
}

// ConvertQuoteToInvoice turns an approved quote into the one non-milestone
// invoice for that quote and marks the quote Invoiced, atomically. A second
// conversion of the same quote fails with Conflict.
func ConvertQuoteToInvoice(ctx context.Context, quoteId int, input *ConvertToInvoiceInput) (*Invoice, error) {
	if err := RequireCapability(ctx, CapQuotesConvert); err != nil {
		return nil, err
	}
	terms, customDays, err := input.resolveTerms()
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	quote, err := utils.FetchModelForUpdate[Quote](tx, ctx, quoteId, "Items")
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if quote.CurrentStatus != QuoteStatusApproved {
		tx.Rollback()
		return nil, utils.InvalidTransitionError(
			"only approved quotes can be converted, quote is " + string(quote.CurrentStatus))
	}

	var existing int64
	err = tx.Model(&Invoice{}).
		Where("quote_id = ? AND parent_invoice_id IS NULL", quoteId).
		Count(&existing).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, utils.ConflictError("quote already has an invoice")
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	now := time.Now()
	dueDate := DueDateFor(terms, customDays, now)

	invoice := Invoice{
		QuoteId:            &quote.ID,
		IsMaster:           utils.NewTrue(),
		ClientId:           quote.ClientId,
		CurrentStatus:      InvoiceStatusDraft,
		InvoiceDate:        now,
		PaymentTerms:       terms,
		CustomDays:         customDays,
		DueDate:            &dueDate,
		Discount:           quote.Discount,
		Cgst:               quote.Cgst,
		Sgst:               quote.Sgst,
		Igst:               quote.Igst,
		ShippingCharges:    quote.ShippingCharges,
		PaymentStatus:      InvoicePaymentStatusPending,
		PaidAmount:         decimal.Zero,
		Notes:              quote.Notes,
		TermsAndConditions: quote.TermsAndConditions,
		Items:              copyQuoteItems(quote.Items),
		CreatedBy:          userId,
	}
	invoice.applyTotals()

	number, err := NextDocumentNumber(tx, NumberModuleInvoice)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	invoice.InvoiceNumber = number

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(quote).UpdateColumn("CurrentStatus", QuoteStatusInvoiced).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ConvertSalesOrderToInvoice turns a fulfilled sales order into its invoice,
// closes the order and marks the originating quote Invoiced, atomically.
func ConvertSalesOrderToInvoice(ctx context.Context, salesOrderId int, input *ConvertToInvoiceInput) (*Invoice, error) {
	if err := RequireCapability(ctx, CapQuotesConvert); err != nil {
		return nil, err
	}
	terms, customDays, err := input.resolveTerms()
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelForUpdate[SalesOrder](tx, ctx, salesOrderId, "Items")
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if order.CurrentStatus != SalesOrderStatusFulfilled {
		tx.Rollback()
		return nil, utils.InvalidTransitionError(
			"only fulfilled sales orders can be converted, order is " + string(order.CurrentStatus))
	}

	var existing int64
	err = tx.Model(&Invoice{}).
		Where("sales_order_id = ? AND parent_invoice_id IS NULL", salesOrderId).
		Count(&existing).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, utils.ConflictError("sales order already has an invoice")
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	now := time.Now()
	dueDate := DueDateFor(terms, customDays, now)

	invoice := Invoice{
		SalesOrderId:    &order.ID,
		QuoteId:         order.QuoteId,
		IsMaster:        utils.NewTrue(),
		ClientId:        order.ClientId,
		CurrentStatus:   InvoiceStatusDraft,
		InvoiceDate:     now,
		PaymentTerms:    terms,
		CustomDays:      customDays,
		DueDate:         &dueDate,
		Discount:        order.Discount,
		Cgst:            order.Cgst,
		Sgst:            order.Sgst,
		Igst:            order.Igst,
		ShippingCharges: order.ShippingCharges,
		PaymentStatus:   InvoicePaymentStatusPending,
		PaidAmount:      decimal.Zero,
		Notes:           order.Notes,
		Items:           copySalesOrderItems(order.Items),
		CreatedBy:       userId,
	}
	invoice.applyTotals()

	number, err := NextDocumentNumber(tx, NumberModuleInvoice)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	invoice.InvoiceNumber = number

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(order).UpdateColumn("CurrentStatus", SalesOrderStatusClosed).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if order.QuoteId != nil {
		err := tx.Model(&Quote{}).Where("id = ?", *order.QuoteId).
			UpdateColumn("current_status", QuoteStatusInvoiced).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

type NewChildInvoice struct {
	MilestoneDescription string          `json:"milestone_description" binding:"required"`
	PaymentTerms         string          `json:"payment_terms"`
	CustomDays           int             `json:"custom_days"`
	Discount             decimal.Decimal `json:"discount"`
	Cgst                 decimal.Decimal `json:"cgst"`
	Sgst                 decimal.Decimal `json:"sgst"`
	Igst                 decimal.Decimal `json:"igst"`
	ShippingCharges      decimal.Decimal `json:"shipping_charges"`
	Notes                string          `json:"notes"`
	Items                []NewQuoteItem  `json:"items" binding:"required,dive"`
}

// CreateChildInvoice bills a milestone against a master invoice. Children
// carry their own line items and due dates; the master keeps the full order
// value.
func CreateChildInvoice(ctx context.Context, masterId int, input *NewChildInvoice) (*Invoice, error) {
	if err := RequireCapability(ctx, CapInvoicesUpdate); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, utils.ValidationError("child invoice must have at least one line item")
	}
	convertInput := &ConvertToInvoiceInput{PaymentTerms: input.PaymentTerms, CustomDays: input.CustomDays}
	terms, customDays, err := convertInput.resolveTerms()
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	master, err := utils.FetchModelForUpdate[Invoice](tx, ctx, masterId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if master.ParentInvoiceId != nil {
		tx.Rollback()
		return nil, utils.ValidationError("milestone invoices can only be created under a master invoice")
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	now := time.Now()
	dueDate := DueDateFor(terms, customDays, now)

	child := Invoice{
		QuoteId:              master.QuoteId,
		SalesOrderId:         master.SalesOrderId,
		ParentInvoiceId:      &master.ID,
		IsMaster:             utils.NewFalse(),
		ClientId:             master.ClientId,
		CurrentStatus:        InvoiceStatusDraft,
		InvoiceDate:          now,
		PaymentTerms:         terms,
		CustomDays:           customDays,
		DueDate:              &dueDate,
		Discount:             input.Discount,
		Cgst:                 input.Cgst,
		Sgst:                 input.Sgst,
		Igst:                 input.Igst,
		ShippingCharges:      input.ShippingCharges,
		PaymentStatus:        InvoicePaymentStatusPending,
		PaidAmount:           decimal.Zero,
		Notes:                input.Notes,
		MilestoneDescription: input.MilestoneDescription,
		CreatedBy:            userId,
	}
	for _, item := range input.Items {
		child.Items = append(child.Items, InvoiceItem{
			Name:           item.Name,
			Description:    item.Description,
			HsnSac:         item.HsnSac,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
			DetailSubtotal: utils.CalculateLineSubtotal(item.DetailQty, item.DetailUnitRate),
		})
	}
	child.applyTotals()

	number, err := NextDocumentNumber(tx, NumberModuleInvoice)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	child.InvoiceNumber = number

	if err := tx.Create(&child).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &child, nil
}

// InvoiceMasterDetailsPatch is a partial update; nil fields are untouched.
// Financial fields are only writable while the invoice is Draft.
type InvoiceMasterDetailsPatch struct {
	Notes                *string          `json:"notes"`
	TermsAndConditions   *string          `json:"terms_and_conditions"`
	DeliveryNotes        *string          `json:"delivery_notes"`
	MilestoneDescription *string          `json:"milestone_description"`
	PaymentTerms         *string          `json:"payment_terms"`
	CustomDays           *int             `json:"custom_days"`
	Discount             *decimal.Decimal `json:"discount"`
	Cgst                 *decimal.Decimal `json:"cgst"`
	Sgst                 *decimal.Decimal `json:"sgst"`
	Igst                 *decimal.Decimal `json:"igst"`
	ShippingCharges      *decimal.Decimal `json:"shipping_charges"`
	Items                []NewQuoteItem   `json:"items"`
}

func (patch *InvoiceMasterDetailsPatch) touchesFinancials() bool {
	return patch.PaymentTerms != nil || patch.CustomDays != nil ||
		patch.Discount != nil || patch.Cgst != nil || patch.Sgst != nil ||
		patch.Igst != nil || patch.ShippingCharges != nil || patch.Items != nil
}

// UpdateInvoiceMasterDetails edits an invoice. While Draft the full content is
// replaceable; once finalized only the free-text fields (notes, terms,
// delivery notes, milestone description) remain writable and a patch touching
// anything financial is rejected outright with Forbidden.
func UpdateInvoiceMasterDetails(ctx context.Context, id int, patch *InvoiceMasterDetailsPatch) (*Invoice, error) {
	if err := RequireCapability(ctx, CapInvoicesUpdate); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	invoice, err := utils.FetchModelForUpdate[Invoice](tx, ctx, id, "Items")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if invoice.CurrentStatus != InvoiceStatusDraft && patch.touchesFinancials() {
		tx.Rollback()
		return nil, utils.ForbiddenError("financial fields are locked once the invoice is finalized")
	}

	if patch.Notes != nil {
		invoice.Notes = *patch.Notes
	}
	if patch.TermsAndConditions != nil {
		invoice.TermsAndConditions = *patch.TermsAndConditions
	}
	if patch.DeliveryNotes != nil {
		invoice.DeliveryNotes = *patch.DeliveryNotes
	}
	if patch.MilestoneDescription != nil {
		invoice.MilestoneDescription = *patch.MilestoneDescription
	}

	if invoice.CurrentStatus == InvoiceStatusDraft {
		if patch.PaymentTerms != nil {
			convertInput := &ConvertToInvoiceInput{PaymentTerms: *patch.PaymentTerms}
			if patch.CustomDays != nil {
				convertInput.CustomDays = *patch.CustomDays
			}
			terms, customDays, err := convertInput.resolveTerms()
			if err != nil {
				tx.Rollback()
				return nil, err
			}
			invoice.PaymentTerms = terms
			invoice.CustomDays = customDays
			dueDate := DueDateFor(terms, customDays, invoice.InvoiceDate)
			invoice.DueDate = &dueDate
		}
		if patch.Discount != nil {
			invoice.Discount = *patch.Discount
		}
		if patch.Cgst != nil {
			invoice.Cgst = *patch.Cgst
		}
		if patch.Sgst != nil {
			invoice.Sgst = *patch.Sgst
		}
		if patch.Igst != nil {
			invoice.Igst = *patch.Igst
		}
		if patch.ShippingCharges != nil {
			invoice.ShippingCharges = *patch.ShippingCharges
		}
		if patch.Items != nil {
			if len(patch.Items) == 0 {
				tx.Rollback()
				return nil, utils.ValidationError("invoice must have at least one line item")
			}
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&InvoiceItem{}).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
			invoice.Items = nil
			for _, item := range patch.Items {
				invoice.Items = append(invoice.Items, InvoiceItem{
					InvoiceId:      invoice.ID,
					Name:           item.Name,
					Description:    item.Description,
					HsnSac:         item.HsnSac,
					DetailQty:      item.DetailQty,
					DetailUnitRate: item.DetailUnitRate,
					DetailSubtotal: utils.CalculateLineSubtotal(item.DetailQty, item.DetailUnitRate),
				})
			}
		}
		invoice.applyTotals()
		invoice.refreshPaymentStatus(time.Now())
	}

	if err := tx.Save(invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// FinalizeInvoice confirms a draft invoice, closing the full-edit window.
func FinalizeInvoice(ctx context.Context, id int) (*Invoice, error) {
	if err := RequireCapability(ctx, CapInvoicesUpdate); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	invoice, err := utils.FetchModelForUpdate[Invoice](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if invoice.CurrentStatus != InvoiceStatusDraft {
		tx.Rollback()
		return nil, utils.InvalidTransitionError("only draft invoices can be finalized")
	}

	if err := tx.Model(invoice).UpdateColumn("CurrentStatus", InvoiceStatusConfirmed).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	invoice.CurrentStatus = InvoiceStatusConfirmed
	return invoice, nil
}

// VoidInvoice cancels a confirmed invoice that has no payments against it.
func VoidInvoice(ctx context.Context, id int) (*Invoice, error) {
	if err := RequireCapability(ctx, CapInvoicesUpdate); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	invoice, err := utils.FetchModelForUpdate[Invoice](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if invoice.CurrentStatus == InvoiceStatusVoid {
		tx.Rollback()
		return nil, utils.InvalidTransitionError("invoice is already void")
	}
	if invoice.PaidAmount.IsPositive() {
		tx.Rollback()
		return nil, utils.ConflictError("cannot void an invoice with recorded payments")
	}

	if err := tx.Model(invoice).UpdateColumn("CurrentStatus", InvoiceStatusVoid).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	invoice.CurrentStatus = InvoiceStatusVoid
	return invoice, nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	return utils.FetchModel[Invoice](ctx, id, "Items", "Client")
}

func GetInvoices(ctx context.Context, paymentStatus *string, clientId *int) ([]*Invoice, error) {
	db := config.GetDB()
	var results []*Invoice

	dbCtx := db.WithContext(ctx).Preload("Items").Preload("Client")
	if paymentStatus != nil && len(*paymentStatus) > 0 {
		dbCtx = dbCtx.Where("payment_status = ?", *paymentStatus)
	}
	if clientId != nil && *clientId > 0 {
		dbCtx = dbCtx.Where("client_id = ?", *clientId)
	}
	if err := dbCtx.Order("id desc").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// OverdueReminderCandidates returns unpaid, non-void master and milestone
// invoices that carry a due date, with clients preloaded for the reminder
// poller.
func OverdueReminderCandidates(db *gorm.DB, ctx context.Context) ([]*Invoice, error) {
	var results []*Invoice
	err := db.WithContext(ctx).
		Preload("Client").
		Where("payment_status != ?", InvoicePaymentStatusPaid).
		Where("current_status != ?", InvoiceStatusVoid).
		Where("due_date IS NOT NULL").
		Where("is_master = ? OR parent_invoice_id IS NOT NULL", true).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
