package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
)

// PurchaseOrder tracks outbound orders to vendors. Vendor details live inline
// on the document; vendors are not a managed entity the way clients are.
type PurchaseOrder struct {
	ID              int                 `gorm:"primary_key" json:"id"`
	OrderNumber     string              `gorm:"size:30;uniqueIndex;not null" json:"order_number"`
	VendorName      string              `gorm:"size:100;not null" json:"vendor_name"`
	VendorEmail     string              `gorm:"size:100" json:"vendor_email"`
	VendorAddress   string              `gorm:"type:text" json:"vendor_address"`
	VendorGstin     string              `gorm:"size:15" json:"vendor_gstin"`
	CurrentStatus   PurchaseOrderStatus `gorm:"size:50;not null;default:'Draft'" json:"current_status"`
	OrderDate       time.Time           `gorm:"not null" json:"order_date"`
	ExpectedDate    *time.Time          `json:"expected_date"`
	Subtotal        decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	Discount        decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"discount"`
	Cgst            decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"cgst"`
	Sgst            decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"sgst"`
	Igst            decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"igst"`
	ShippingCharges decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"shipping_charges"`
	Total           decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"total"`
	Notes           string              `gorm:"type:text" json:"notes"`
	Items           []PurchaseOrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedBy       int                 `json:"created_by"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	PurchaseOrderId int             `gorm:"not null;index" json:"purchase_order_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	HsnSac          string          `gorm:"size:20" json:"hsn_sac"`
	DetailQty       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_qty"`
	DetailUnitRate  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_unit_rate"`
	DetailSubtotal  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_subtotal"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchaseOrder struct {
	VendorName      string          `json:"vendor_name" binding:"required"`
	VendorEmail     string          `json:"vendor_email"`
	VendorAddress   string          `json:"vendor_address"`
	VendorGstin     string          `json:"vendor_gstin"`
	OrderDate       *time.Time      `json:"order_date"`
	ExpectedDate    *time.Time      `json:"expected_date"`
	Discount        decimal.Decimal `json:"discount"`
	Cgst            decimal.Decimal `json:"cgst"`
	Sgst            decimal.Decimal `json:"sgst"`
	Igst            decimal.Decimal `json:"igst"`
	ShippingCharges decimal.Decimal `json:"shipping_charges"`
	Notes           string          `json:"notes"`
	Items           []NewQuoteItem  `json:"items" binding:"required,dive"`
}

var purchaseOrderStatusGraph = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderStatusDraft:     {PurchaseOrderStatusIssued, PurchaseOrderStatusCancelled},
	PurchaseOrderStatusIssued:    {PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled},
	PurchaseOrderStatusReceived:  {PurchaseOrderStatusClosed},
	PurchaseOrderStatusClosed:    {},
	PurchaseOrderStatusCancelled: {},
}

func CanTransitionPurchaseOrder(from, to PurchaseOrderStatus) bool {
	for _, next := range purchaseOrderStatusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (input *NewPurchaseOrder) validate() error {
	if len(input.Items) == 0 {
		return utils.ValidationError("purchase order must have at least one line item")
	}
	if input.VendorEmail != "" && !utils.IsValidEmail(input.VendorEmail) {
		return utils.ValidationError("vendor email is not valid")
	}
	return nil
}

func (order *PurchaseOrder) applyTotals() {
	lines := make([]utils.TotalsLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, utils.TotalsLine{Qty: item.DetailQty, UnitRate: item.DetailUnitRate})
	}
	totals := utils.CalculateTotals(lines, order.Discount, order.Cgst, order.Sgst, order.Igst, order.ShippingCharges)
	order.Subtotal = totals.Subtotal
	order.Total = totals.Total
}

func buildPurchaseOrderItems(items []NewQuoteItem) []PurchaseOrderItem {
	result := make([]PurchaseOrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, PurchaseOrderItem{
			Name:           item.Name,
			Description:    item.Description,
			HsnSac:         item.HsnSac,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
			DetailSubtotal: utils.CalculateLineSubtotal(item.DetailQty, item.DetailUnitRate),
		})
	}
	return result
}

func CreatePurchaseOrder(ctx context.Context, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if err := RequireCapability(ctx, CapPurchaseOrderManage); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := PurchaseOrder{
		VendorName:      input.VendorName,
		VendorEmail:     input.VendorEmail,
		VendorAddress:   input.VendorAddress,
		VendorGstin:     input.VendorGstin,
		CurrentStatus:   PurchaseOrderStatusDraft,
		OrderDate:       orderDate,
		ExpectedDate:    input.ExpectedDate,
		Discount:        input.Discount,
		Cgst:            input.Cgst,
		Sgst:            input.Sgst,
		Igst:            input.Igst,
		ShippingCharges: input.ShippingCharges,
		Notes:           input.Notes,
		Items:           buildPurchaseOrderItems(input.Items),
		CreatedBy:       userId,
	}
	order.applyTotals()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	number, err := NextDocumentNumber(tx, NumberModulePurchaseOrder)
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

// UpdatePurchaseOrder replaces a draft order's content. Issued and later
// orders are immutable apart from status changes.
func UpdatePurchaseOrder(ctx context.Context, id int, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if err := RequireCapability(ctx, CapPurchaseOrderManage); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelForUpdate[PurchaseOrder](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if order.CurrentStatus != PurchaseOrderStatusDraft {
		tx.Rollback()
		return nil, utils.ValidationError("only draft purchase orders can be updated")
	}

	order.VendorName = input.VendorName
	order.VendorEmail = input.VendorEmail
	order.VendorAddress = input.VendorAddress
	order.VendorGstin = input.VendorGstin
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	order.ExpectedDate = input.ExpectedDate
	order.Discount = input.Discount
	order.Cgst = input.Cgst
	order.Sgst = input.Sgst
	order.Igst = input.Igst
	order.ShippingCharges = input.ShippingCharges
	order.Notes = input.Notes
	order.Items = buildPurchaseOrderItems(input.Items)
	for i := range order.Items {
		order.Items[i].PurchaseOrderId = order.ID
	}
	order.applyTotals()

	if err := tx.Where("purchase_order_id = ?", order.ID).Delete(&PurchaseOrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Save(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return order, nil
}

func UpdateStatusPurchaseOrder(ctx context.Context, id int, target PurchaseOrderStatus) (*PurchaseOrder, error) {
	if err := RequireCapability(ctx, CapPurchaseOrderManage); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelForUpdate[PurchaseOrder](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !CanTransitionPurchaseOrder(order.CurrentStatus, target) {
		tx.Rollback()
		return nil, utils.InvalidTransitionError(
			"cannot transition purchase order from " + string(order.CurrentStatus) + " to " + string(target))
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

func DeletePurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	if err := RequireCapability(ctx, CapPurchaseOrderManage); err != nil {
		return nil, err
	}

	order, err := utils.FetchModel[PurchaseOrder](ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CurrentStatus != PurchaseOrderStatusDraft {
		return nil, utils.ConflictError("only draft purchase orders can be deleted")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Select("Items").Delete(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	return utils.FetchModel[PurchaseOrder](ctx, id, "Items")
}

func GetPurchaseOrders(ctx context.Context, status *string, vendorName *string) ([]*PurchaseOrder, error) {
	db := config.GetDB()
	var results []*PurchaseOrder

	dbCtx := db.WithContext(ctx).Preload("Items")
	if status != nil && len(*status) > 0 {
		parsed, err := ParsePurchaseOrderStatus(*status)
		if err != nil {
			return nil, utils.ValidationError(err.Error())
		}
		dbCtx = dbCtx.Where("current_status = ?", parsed)
	}
	if vendorName != nil && len(*vendorName) > 0 {
		dbCtx = dbCtx.Where("vendor_name LIKE ?", "%"+*vendorName+"%")
	}
	if err := dbCtx.Order("id desc").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
