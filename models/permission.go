package models

import (
	"context"
	"fmt"

	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

// Capabilities are keyed "resource.action". The table is closed: adding a role
// or capability means touching this file, which is the point — there is no
// runtime-mutable permission store to drift out of sync.

const (
	CapQuotesCreate        = "quotes.create"
	CapQuotesUpdate        = "quotes.update"
	CapQuotesApprove       = "quotes.approve"
	CapQuotesCancel        = "quotes.cancel"
	CapQuotesConvert       = "quotes.convert"
	CapInvoicesUpdate      = "invoices.update"
	CapInvoicesPay         = "invoices.pay"
	CapClientsManage       = "clients.manage"
	CapPurchaseOrderManage = "purchase_orders.manage"
	CapReportsView         = "reports.view"
	CapUsersManage         = "users.manage"
)

var roleCapabilities = map[UserRole]map[string]bool{
	UserRoleAdmin: {
		CapQuotesCreate:        true,
		CapQuotesUpdate:        true,
		CapQuotesApprove:       true,
		CapQuotesCancel:        true,
		CapQuotesConvert:       true,
		CapInvoicesUpdate:      true,
		CapInvoicesPay:         true,
		CapClientsManage:       true,
		CapPurchaseOrderManage: true,
		CapReportsView:         true,
		CapUsersManage:         true,
	},
	UserRoleSalesExecutive: {
		CapQuotesCreate:  true,
		CapQuotesUpdate:  true,
		CapQuotesConvert: true,
		CapClientsManage: true,
		CapReportsView:   true,
	},
	UserRoleSalesManager: {
		CapQuotesCreate:  true,
		CapQuotesUpdate:  true,
		CapQuotesApprove: true,
		CapQuotesCancel:  true,
		CapQuotesConvert: true,
		CapClientsManage: true,
		CapReportsView:   true,
	},
	UserRolePurchaseOperations: {
		CapPurchaseOrderManage: true,
		CapReportsView:         true,
	},
	UserRoleFinanceAccounts: {
		CapInvoicesUpdate: true,
		CapInvoicesPay:    true,
		CapReportsView:    true,
	},
	UserRoleViewer: {
		CapReportsView: true,
	},
}

func HasPermission(role UserRole, capability string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[capability]
}

// RequireCapability resolves the acting role from the request context and
// returns Forbidden when it lacks the capability.
func RequireCapability(ctx context.Context, capability string) error {
	roleName, ok := utils.GetUserRoleFromContext(ctx)
	if !ok || roleName == "" {
		return utils.ForbiddenError("no acting role in request context")
	}
	role, err := ParseUserRole(roleName)
	if err != nil {
		return utils.ForbiddenError(err.Error())
	}
	if !HasPermission(role, capability) {
		return utils.ForbiddenError(fmt.Sprintf("role %s lacks %s", role, capability))
	}
	return nil
}
