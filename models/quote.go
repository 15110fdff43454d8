package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Quote struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	QuoteNumber        string          `gorm:"size:30;uniqueIndex;not null" json:"quote_number"`
	Version            int             `gorm:"not null;default:1" json:"version"`
	CurrentStatus      QuoteStatus     `gorm:"size:50;not null;default:'Draft'" json:"current_status"`
	ClientId           int             `gorm:"not null;index" json:"client_id"`
	Client             *Client         `json:"client,omitempty"`
	QuoteDate          time.Time       `gorm:"not null" json:"quote_date"`
	ValidityDays       int             `gorm:"not null;default:30" json:"validity_days"`
	ReferenceNumber    string          `gorm:"size:100" json:"reference_number"`
	AttentionTo        string          `gorm:"size:100" json:"attention_to"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	Discount           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"discount"`
	Cgst               decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cgst"`
	Sgst               decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"sgst"`
	Igst               decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"igst"`
	ShippingCharges    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"shipping_charges"`
	Total              decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
	Notes              string          `gorm:"type:text" json:"notes"`
	TermsAndConditions string          `gorm:"type:text" json:"terms_and_conditions"`
	Items              []QuoteItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedBy          int             `json:"created_by"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type QuoteItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	QuoteId        int             `gorm:"not null;index" json:"quote_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	HsnSac         string          `gorm:"size:20" json:"hsn_sac"`
	DetailQty      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_qty"`
	DetailUnitRate decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_unit_rate"`
	DetailSubtotal decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"detail_subtotal"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewQuote struct {
	ClientId           int             `json:"client_id" binding:"required"`
	QuoteDate          *time.Time      `json:"quote_date"`
	ValidityDays       int             `json:"validity_days"`
	ReferenceNumber    string          `json:"reference_number"`
	AttentionTo        string          `json:"attention_to"`
	Discount           decimal.Decimal `json:"discount"`
	Cgst               decimal.Decimal `json:"cgst"`
	Sgst               decimal.Decimal `json:"sgst"`
	Igst               decimal.Decimal `json:"igst"`
	ShippingCharges    decimal.Decimal `json:"shipping_charges"`
	Notes              string          `json:"notes"`
	TermsAndConditions string          `json:"terms_and_conditions"`
	Items              []NewQuoteItem  `json:"items" binding:"required,dive"`
}

type NewQuoteItem struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	HsnSac         string          `json:"hsn_sac"`
	DetailQty      decimal.Decimal `json:"detail_qty" binding:"required"`
	DetailUnitRate decimal.Decimal `json:"detail_unit_rate"`
}

func (input *NewQuote) validate(ctx context.Context) error {
	if len(input.Items) == 0 {
		return utils.ValidationError("quote must have at least one line item")
	}
	for _, item := range input.Items {
		if item.DetailQty.IsNegative() {
			return utils.ValidationError("line quantity must not be negative")
		}
	}
	if err := utils.ValidateResourceId[Client](ctx, input.ClientId); err != nil {
		return err
	}
	return nil
}

// buildItems computes each line subtotal from qty x unit rate; client-supplied
// subtotals are ignored.
func (input *NewQuote) buildItems() []QuoteItem {
	items := make([]QuoteItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, QuoteItem{
			Name:           item.Name,
			Description:    item.Description,
			HsnSac:         item.HsnSac,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
			DetailSubtotal: utils.CalculateLineSubtotal(item.DetailQty, item.DetailUnitRate),
		})
	}
	return items
}

// applyTotals recomputes subtotal and total from the current items and
// adjustment fields. Every write path that touches money calls this; totals are
// never accepted from the client.
func (quote *Quote) applyTotals() {
	lines := make([]utils.TotalsLine, 0, len(quote.Items))
	for _, item := range quote.Items {
		lines = append(lines, utils.TotalsLine{Qty: item.DetailQty, UnitRate: item.DetailUnitRate})
	}
	totals := utils.CalculateTotals(lines, quote.Discount, quote.Cgst, quote.Sgst, quote.Igst, quote.ShippingCharges)
	quote.Subtotal = totals.Subtotal
	quote.Total = totals.Total
}

func CreateQuote(ctx context.Context, input *NewQuote) (*Quote, error) {
	if err := RequireCapability(ctx, CapQuotesCreate); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	quoteDate := time.Now()
	if input.QuoteDate != nil {
		quoteDate = *input.QuoteDate
	}
	validityDays := input.ValidityDays
	if validityDays <= 0 {
		validityDays = 30
	}

	quote := Quote{
		Version:            1,
		CurrentStatus:      QuoteStatusDraft,
		ClientId:           input.ClientId,
		QuoteDate:          quoteDate,
		ValidityDays:       validityDays,
		ReferenceNumber:    input.ReferenceNumber,
		AttentionTo:        input.AttentionTo,
		Discount:           input.Discount,
		Cgst:               input.Cgst,
		Sgst:               input.Sgst,
		Igst:               input.Igst,
		ShippingCharges:    input.ShippingCharges,
		Notes:              input.Notes,
		TermsAndConditions: input.TermsAndConditions,
		Items:              input.buildItems(),
		CreatedBy:          userId,
	}
	quote.applyTotals()

	db := config.GetDB()
	err := createQuoteWithNumber(db.WithContext(ctx), &quote)
	// retry once with a fresh number if the unique-index backstop fired
	if IsDuplicateEntry(err) {
		quote.ID = 0
		for i := range quote.Items {
			quote.Items[i].ID = 0
		}
		err = createQuoteWithNumber(db.WithContext(ctx), &quote)
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func createQuoteWithNumber(db *gorm.DB, quote *Quote) error {
	tx := db.Begin()

	number, err := NextDocumentNumber(tx, NumberModuleQuote)
	if err != nil {
		tx.Rollback()
		return err
	}
	quote.QuoteNumber = number

	if err := tx.Create(quote).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// UpdateQuote replaces the quote's content in place. Only draft quotes are
// editable; revising puts a quote back into draft first.
func UpdateQuote(ctx context.Context, id int, input *NewQuote) (*Quote, error) {
	if err := RequireCapability(ctx, CapQuotesUpdate); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	quote, err := utils.FetchModelForUpdate[Quote](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if quote.CurrentStatus != QuoteStatusDraft {
		tx.Rollback()
		return nil, utils.ValidationError("only draft quotes can be updated")
	}

	quote.ClientId = input.ClientId
	if input.QuoteDate != nil {
		quote.QuoteDate = *input.QuoteDate
	}
	if input.ValidityDays > 0 {
		quote.ValidityDays = input.ValidityDays
	}
	quote.ReferenceNumber = input.ReferenceNumber
	quote.AttentionTo = input.AttentionTo
	quote.Discount = input.Discount
	quote.Cgst = input.Cgst
	quote.Sgst = input.Sgst
	quote.Igst = input.Igst
	quote.ShippingCharges = input.ShippingCharges
	quote.Notes = input.Notes
	quote.TermsAndConditions = input.TermsAndConditions
	quote.Items = input.buildItems()
	for i := range quote.Items {
		quote.Items[i].QuoteId = quote.ID
	}
	quote.applyTotals()

	if err := tx.Where("quote_id = ?", quote.ID).Delete(&QuoteItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Save(quote).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// ReviseQuote snapshots the current content into the version history, bumps
// the version and drops the quote back to draft, all in one transaction. The
// quote number stays the same across revisions. Invoiced and closed quotes
// cannot be revised.
func ReviseQuote(ctx context.Context, id int) (*Quote, error) {
	if err := RequireCapability(ctx, CapQuotesUpdate); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	quote, err := utils.FetchModelForUpdate[Quote](tx, ctx, id, "Items")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	switch quote.CurrentStatus {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusApproved, QuoteStatusRejected:
		// revisable
	default:
		tx.Rollback()
		return nil, utils.InvalidTransitionError("cannot revise a quote in status " + string(quote.CurrentStatus))
	}

	snapshot, err := utils.MarshalToJSON(quote)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	version := QuoteVersion{
		QuoteId:  quote.ID,
		Version:  quote.Version,
		Status:   quote.CurrentStatus,
		Snapshot: snapshot,
	}
	if err := tx.Create(&version).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(quote).Updates(map[string]interface{}{
		"Version":       quote.Version + 1,
		"CurrentStatus": QuoteStatusDraft,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	quote.Version++
	quote.CurrentStatus = QuoteStatusDraft
	return quote, nil
}

// CloneQuote copies a quote's content into a brand-new draft with its own
// number and version 1. Status and version history do not carry over.
func CloneQuote(ctx context.Context, id int) (*Quote, error) {
	if err := RequireCapability(ctx, CapQuotesCreate); err != nil {
		return nil, err
	}

	source, err := utils.FetchModel[Quote](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	clone := Quote{
		Version:            1,
		CurrentStatus:      QuoteStatusDraft,
		ClientId:           source.ClientId,
		QuoteDate:          time.Now(),
		ValidityDays:       source.ValidityDays,
		ReferenceNumber:    source.ReferenceNumber,
		AttentionTo:        source.AttentionTo,
		Discount:           source.Discount,
		Cgst:               source.Cgst,
		Sgst:               source.Sgst,
		Igst:               source.Igst,
		ShippingCharges:    source.ShippingCharges,
		Notes:              source.Notes,
		TermsAndConditions: source.TermsAndConditions,
		CreatedBy:          userId,
	}
	for _, item := range source.Items {
		clone.Items = append(clone.Items, QuoteItem{
			Name:           item.Name,
			Description:    item.Description,
			HsnSac:         item.HsnSac,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
			DetailSubtotal: item.DetailSubtotal,
		})
	}
	clone.applyTotals()

	db := config.GetDB()
	err = createQuoteWithNumber(db.WithContext(ctx), &clone)
	if IsDuplicateEntry(err) {
		clone.ID = 0
		for i := range clone.Items {
			clone.Items[i].ID = 0
		}
		err = createQuoteWithNumber(db.WithContext(ctx), &clone)
	}
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func GetQuote(ctx context.Context, id int) (*Quote, error) {
	return utils.FetchModel[Quote](ctx, id, "Items", "Client")
}

func GetQuotes(ctx context.Context, status *string, clientId *int) ([]*Quote, error) {
	db := config.GetDB()
	var results []*Quote

	dbCtx := db.WithContext(ctx).Preload("Items").Preload("Client")
	if status != nil && len(*status) > 0 {
		parsed, err := ParseQuoteStatus(*status)
		if err != nil {
			return nil, utils.ValidationError(err.Error())
		}
		dbCtx = dbCtx.Where("current_status = ?", parsed)
	}
	if clientId != nil && *clientId > 0 {
		dbCtx = dbCtx.Where("client_id = ?", *clientId)
	}
	if err := dbCtx.Order("id desc").Limit(config.SearchLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
