package models

import (
	"context"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

// The quote lifecycle is a closed graph. Draft -> Sent -> Approved/Rejected is
// the forward path; Invoiced is reachable only through conversion, never by a
// direct status change. The two closed states are administrative overrides
// that can be applied from any state except Invoiced.

var quoteStatusGraph = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:    {QuoteStatusSent},
	QuoteStatusSent:     {QuoteStatusApproved, QuoteStatusRejected},
	QuoteStatusApproved: {},
	QuoteStatusRejected: {},
	QuoteStatusInvoiced: {},
	// closed states are terminal
	QuoteStatusClosedPaid:      {},
	QuoteStatusClosedCancelled: {},
}

// capability required to request each target status
var quoteTransitionCapability = map[QuoteStatus]string{
	QuoteStatusSent:            CapQuotesCreate,
	QuoteStatusApproved:        CapQuotesApprove,
	QuoteStatusRejected:        CapQuotesCancel,
	QuoteStatusClosedPaid:      CapQuotesCancel,
	QuoteStatusClosedCancelled: CapQuotesCancel,
}

func isClosedOverride(target QuoteStatus) bool {
	return target == QuoteStatusClosedPaid || target == QuoteStatusClosedCancelled
}

// CanTransitionQuote reports whether the graph allows from -> to, ignoring
// capabilities. Pure, used by the executor and directly testable.
func CanTransitionQuote(from, to QuoteStatus) bool {
	if isClosedOverride(to) {
		return from != QuoteStatusInvoiced && !isClosedOverride(from)
	}
	for _, next := range quoteStatusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionQuoteStatus moves a quote along the lifecycle graph. The row is
// locked for the duration of the transaction, so two clients racing to
// transition the same quote serialize and the loser gets InvalidTransition.
func TransitionQuoteStatus(ctx context.Context, id int, target QuoteStatus) (*Quote, error) {
	capability, ok := quoteTransitionCapability[target]
	if !ok {
		if target == QuoteStatusInvoiced {
			return nil, utils.InvalidTransitionError("quotes become Invoiced through conversion, not a status change")
		}
		return nil, utils.InvalidTransitionError("cannot transition a quote to " + string(target))
	}
	if err := RequireCapability(ctx, capability); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	quote, err := utils.FetchModelForUpdate[Quote](tx, ctx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if !CanTransitionQuote(quote.CurrentStatus, target) {
		tx.Rollback()
		return nil, utils.InvalidTransitionError(
			"cannot transition quote from " + string(quote.CurrentStatus) + " to " + string(target))
	}

	if err := tx.Model(quote).UpdateColumn("CurrentStatus", target).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	quote.CurrentStatus = target
	return quote, nil
}
