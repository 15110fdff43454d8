package models_test

import (
	"context"
	"testing"

	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role       models.UserRole
		capability string
		allowed    bool
	}{
		{models.UserRoleAdmin, models.CapUsersManage, true},
		{models.UserRoleAdmin, models.CapQuotesApprove, true},

		{models.UserRoleSalesExecutive, models.CapQuotesCreate, true},
		{models.UserRoleSalesExecutive, models.CapQuotesConvert, true},
		{models.UserRoleSalesExecutive, models.CapQuotesApprove, false},
		{models.UserRoleSalesExecutive, models.CapQuotesCancel, false},
		{models.UserRoleSalesExecutive, models.CapInvoicesPay, false},

		{models.UserRoleSalesManager, models.CapQuotesApprove, true},
		{models.UserRoleSalesManager, models.CapQuotesCancel, true},
		{models.UserRoleSalesManager, models.CapPurchaseOrderManage, false},

		{models.UserRolePurchaseOperations, models.CapPurchaseOrderManage, true},
		{models.UserRolePurchaseOperations, models.CapQuotesCreate, false},

		{models.UserRoleFinanceAccounts, models.CapInvoicesPay, true},
		{models.UserRoleFinanceAccounts, models.CapInvoicesUpdate, true},
		{models.UserRoleFinanceAccounts, models.CapQuotesApprove, false},

		{models.UserRoleViewer, models.CapReportsView, true},
		{models.UserRoleViewer, models.CapQuotesCreate, false},
		{models.UserRoleViewer, models.CapClientsManage, false},
	}
	for _, tc := range cases {
		if got := models.HasPermission(tc.role, tc.capability); got != tc.allowed {
			t.Fatalf("HasPermission(%s, %s) expected %v, got %v", tc.role, tc.capability, tc.allowed, got)
		}
	}
}

func TestRequireCapability(t *testing.T) {
	ctx := utils.SetUserRoleInContext(context.Background(), string(models.UserRoleViewer))

	if err := models.RequireCapability(ctx, models.CapReportsView); err != nil {
		t.Fatalf("viewer should view reports: %v", err)
	}

	err := models.RequireCapability(ctx, models.CapQuotesCreate)
	if err == nil {
		t.Fatalf("viewer must not create quotes")
	}
	if !utils.IsKind(err, utils.ErrorKindForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestRequireCapability_NoRoleInContext(t *testing.T) {
	err := models.RequireCapability(context.Background(), models.CapReportsView)
	if !utils.IsKind(err, utils.ErrorKindForbidden) {
		t.Fatalf("expected Forbidden without a role, got %v", err)
	}
}

func TestRequireCapability_UnknownRole(t *testing.T) {
	ctx := utils.SetUserRoleInContext(context.Background(), "superuser")
	err := models.RequireCapability(ctx, models.CapReportsView)
	if !utils.IsKind(err, utils.ErrorKindForbidden) {
		t.Fatalf("expected Forbidden for unknown role, got %v", err)
	}
}
