package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
)

// SalesOrder sits between an approved quote and its invoice for orders that
// are fulfilled before billing. Orders are created from approved quotes only.
type SalesOrder struct {
	ID              int              `gorm:"primary_key" json:"id"`
	OrderNumber     string           `gorm:"size:30;uniqueIndex;not null" json:"order_number"`
	QuoteId         *int             `gorm:"index" json:"quote_id"`
	ClientId        int              `gorm:"not null;index" json:"client_id"`
	Client          *Client          `json:"client,omitempty"`
	CurrentStatus   SalesOrderStatus `gorm:"size:50;not null;default:'Confirmed'" json:"current_status"`
	OrderDate       time.Time        `gorm:"not null" json:"order_date"`
	Subtotal        decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	Discount        decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"discount"`
	Cgst            decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"cgst"`
	Sgst            decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"sgst"`
	Igst            decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"igst"`
	ShippingCharges decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"shipping_charges"`
	Total           decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"total"`
	Notes           string           `gorm:"type:text" json:"notes"`
	Items           []SalesOrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedBy       int              `json:"created_by"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type SalesOrderItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	SalesOrderId   int             `gorm:"not null;index" json:"sales_order_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	HsnSac         string          `gorm:"size:20" json:"hsn_sac"`
	DetailQty      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_qty"`
	DetailUnitRate decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_unit_rate"`
	DetailSubtotal decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_subtotal"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

var salesOrderStatusGraph = map[SalesOrderStatus][]SalesOrderStatus{
	SalesOrderStatusConfirmed: {SalesOrderStatusFulfilled, SalesOrderStatusCancelled},
	SalesOrderStatusFulfilled: {SalesOrderStatusClosed},
	SalesOrderStatusClosed:    {},
	SalesOrderStatusCancelled: {},
}

func CanTransitionSalesOrder(from, to SalesOrderStatus) bool {
	for _, next := range salesOrderStatusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

func copySalesOrderItems(items []SalesOrderItem) []InvoiceItem {
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

// CreateSalesOrderFromQuote confirms an order against an approved quote,
// copying line items and adjustments 1:1. The quote stays Approved until
// invoicing.
func CreateSalesOrderFromQuote(ctx context.Context, quoteId int) (*SalesOrder, error) {
	if err := RequireCapability(ctx, CapQuotesConvert); err != nil {
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
			"only approved quotes can become sales orders, quote is " + string(quote.CurrentStatus))
	}

	var existing int64
	if err := tx.Model(&SalesOrder{}).Where("quote_id = ?", quoteId).Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, utils.ConflictError("quote already has a sales order")
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	order := SalesOrder{
		QuoteId:         &quote.ID,
		ClientId:        quote.ClientId,
		CurrentStatus:   SalesOrderStatusConfirmed,
		OrderDate:       time.Now(),
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		Cgst:            quote.Cgst,
		Sgst:            quote.Sgst,
		Igst:            quote.Igst,
		ShippingCharges: quote.ShippingCharges,
		Total:           quote.Total,
		Notes:           quote.Notes,
		CreatedBy:       userId,
	}
	for _, item := range quote.Items {
		order.Items = append(order.Items, SalesOrderItem{
			Name:           item.Name,
			Description:    item.Description,
			HsnSac:         item.HsnSac,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
			DetailSubtotal: item.DetailSubtotal,
		})
	}

	number, err := NextDocumentNumber(tx, NumberModuleSalesOrder)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	order.OrderNumber = number

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatusSalesOrder moves an order along Confirmed -> Fulfilled -> Closed
// with Cancelled reachable from Confirmed. Closing via invoicing happens in
// ConvertSalesOrderToInvoice, but a manual close of a fulfilled order is also
// allowed here.
func UpdateStatusSalesOrder(ctx context.Context, id int, target SalesOrderStatus) (*SalesOrder, error) {
	if err := RequireCapability(ctx, CapQuotesConvert); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelForUpdate[SalesOrder](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !CanTransitionSalesOrder(order.CurrentStatus, target) {
		tx.Rollback()
		return nil, utils.InvalidTransitionError(
			"cannot transition sales order from " + string(order.CurrentStatus) + " to " + string(target))
	}

	if err := tx.Model(order).UpdateColumn("CurrentStatus", target).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	order.CurrentStatus = target
	return order, nil
}

func GetSalesOrder(ctx context.Context, id int) (*SalesOrder, error) {
	return utils.FetchModel[SalesOrder](ctx, id, "Items", "Client")
}

func GetSalesOrders(ctx context.Context, status *string) ([]*SalesOrder, error) {
	db := config.GetDB()
	var results []*SalesOrder

	dbCtx := db.WithContext(ctx).Preload("Items").Preload("Client")
	if status != nil && len(*status) > 0 {
		parsed, err := ParseSalesOrderStatus(*status)
		if err != nil {
			return nil, utils.ValidationError(err.Error())
		}
		dbCtx = dbCtx.Where("current_status = ?", parsed)
	}
	if err := dbCtx.Order("id desc").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
