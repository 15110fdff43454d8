package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
)

type InvoicePayment struct {
	ID            int             `gorm:"primary_key" json:"id"`
	PaymentNumber string          `gorm:"size:30;uniqueIndex;not null" json:"payment_number"`
	InvoiceId     int             `gorm:"not null;index" json:"invoice_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	Method        string          `gorm:"size:50" json:"method"`
	Reference     string          `gorm:"size:100" json:"reference"`
	Notes         string          `gorm:"type:text" json:"notes"`
	RecordedBy    int             `json:"recorded_by"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewInvoicePayment struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
}

// RecordInvoicePayment appends a payment row and bumps the invoice's paid
// amount under a row lock. Payments can never push paidAmount past total, and
// the payment status is re-derived in the same transaction.
func RecordInvoicePayment(ctx context.Context, invoiceId int, input *NewInvoicePayment) (*InvoicePayment, error) {
	if err := RequireCapability(ctx, CapInvoicesPay); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, utils.ValidationError("payment amount must be positive")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	invoice, err := utils.FetchModelForUpdate[Invoice](tx, ctx, invoiceId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if invoice.CurrentStatus == InvoiceStatusVoid {
		tx.Rollback()
		return nil, utils.ValidationError("cannot record a payment against a void invoice")
	}

	newPaid := invoice.PaidAmount.Add(input.Amount)
	if newPaid.GreaterThan(invoice.Total) {
		tx.Rollback()
		return nil, utils.ValidationError("payment exceeds invoice outstanding amount")
	}

	number, err := NextDocumentNumber(tx, NumberModulePayment)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := InvoicePayment{
		PaymentNumber: number,
		InvoiceId:     invoice.ID,
		Amount:        input.Amount,
		PaymentDate:   paymentDate,
		Method:        input.Method,
		Reference:     input.Reference,
		Notes:         input.Notes,
		RecordedBy:    userId,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	invoice.PaidAmount = newPaid
	invoice.refreshPaymentStatus(time.Now())
	if err := tx.Model(invoice).Updates(map[string]interface{}{
		"PaidAmount":    invoice.PaidAmount,
		"PaymentStatus": invoice.PaymentStatus,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetInvoicePayments(ctx context.Context, invoiceId int) ([]*InvoicePayment, error) {
	db := config.GetDB()
	var results []*InvoicePayment
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceId).
		Order("payment_date").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
