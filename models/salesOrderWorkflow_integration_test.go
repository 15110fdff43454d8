package models_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
)

// Sales-order path: approved quote -> confirmed order -> fulfilled ->
// converted to invoice, closing the order and invoicing the quote. Also
// exercises milestone child invoices under the master.
func TestSalesOrderToInvoiceWorkflow(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "salesdesk_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	if err := models.MigrateTable(config.GetDB()); err != nil {
		t.Fatalf("MigrateTable: %v", err)
	}

	adminCtx := utils.SetUserIdInContext(ctx, 1)
	adminCtx = utils.SetUserNameInContext(adminCtx, "Test Admin")
	adminCtx = utils.SetUserRoleInContext(adminCtx, string(models.UserRoleAdmin))

	client, err := models.CreateClient(adminCtx, &models.NewClient{
		Name:  "Globex Industries",
		Email: "billing@globex.test",
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	quote, err := models.CreateQuote(adminCtx, &models.NewQuote{
		ClientId: client.ID,
		Items: []models.NewQuoteItem{
			{Name: "Installation", HsnSac: "9987", DetailQty: decimal.RequireFromString("1"), DetailUnitRate: decimal.RequireFromString("5000.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	// orders require an approved quote
	if _, err := models.CreateSalesOrderFromQuote(adminCtx, quote.ID); !utils.IsKind(err, utils.ErrorKindInvalidTransition) {
		t.Fatalf("expected InvalidTransition for draft quote, got %v", err)
	}

	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusSent); err != nil {
		t.Fatalf("Draft -> Sent: %v", err)
	}
	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusApproved); err != nil {
		t.Fatalf("Sent -> Approved: %v", err)
	}

	order, err := models.CreateSalesOrderFromQuote(adminCtx, quote.ID)
	if err != nil {
		t.Fatalf("CreateSalesOrderFromQuote: %v", err)
	}
	if !strings.HasPrefix(order.OrderNumber, "SO-") {
		t.Fatalf("expected SO- prefixed number, got %s", order.OrderNumber)
	}
	if !order.Total.Equal(quote.Total) {
		t.Fatalf("order must carry the quote total")
	}

	// conversion requires a fulfilled order
	if _, err := models.ConvertSalesOrderToInvoice(adminCtx, order.ID, nil); !utils.IsKind(err, utils.ErrorKindInvalidTransition) {
		t.Fatalf("expected InvalidTransition converting confirmed order, got %v", err)
	}
	if _, err := models.UpdateStatusSalesOrder(adminCtx, order.ID, models.SalesOrderStatusFulfilled); err != nil {
		t.Fatalf("Confirmed -> Fulfilled: %v", err)
	}

	invoice, err := models.ConvertSalesOrderToInvoice(adminCtx, order.ID, &models.ConvertToInvoiceInput{
		PaymentTerms: "Custom",
		CustomDays:   10,
	})
	if err != nil {
		t.Fatalf("ConvertSalesOrderToInvoice: %v", err)
	}
	if invoice.SalesOrderId == nil || *invoice.SalesOrderId != order.ID {
		t.Fatalf("invoice must link back to the order")
	}

	closedOrder, err := models.GetSalesOrder(adminCtx, order.ID)
	if err != nil {
		t.Fatalf("GetSalesOrder: %v", err)
	}
	if closedOrder.CurrentStatus != models.SalesOrderStatusClosed {
		t.Fatalf("order must close on conversion, got %s", closedOrder.CurrentStatus)
	}
	invoicedQuote, err := models.GetQuote(adminCtx, quote.ID)
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if invoicedQuote.CurrentStatus != models.QuoteStatusInvoiced {
		t.Fatalf("originating quote must be Invoiced, got %s", invoicedQuote.CurrentStatus)
	}

	// double conversion conflicts
	if _, err := models.ConvertSalesOrderToInvoice(adminCtx, order.ID, nil); !utils.IsKind(err, utils.ErrorKindConflict) {
		t.Fatalf("expected Conflict on double conversion, got %v", err)
	}

	// milestone child under the master
	child, err := models.CreateChildInvoice(adminCtx, invoice.ID, &models.NewChildInvoice{
		MilestoneDescription: "Phase 1 delivery",
		Items: []models.NewQuoteItem{
			{Name: "Phase 1", DetailQty: decimal.RequireFromString("1"), DetailUnitRate: decimal.RequireFromString("2000.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateChildInvoice: %v", err)
	}
	if child.ParentInvoiceId == nil || *child.ParentInvoiceId != invoice.ID {
		t.Fatalf("child must point at the master")
	}
	if child.IsMaster == nil || *child.IsMaster {
		t.Fatalf("child must not be a master")
	}

	// children cannot nest
	if _, err := models.CreateChildInvoice(adminCtx, child.ID, &models.NewChildInvoice{
		MilestoneDescription: "nested",
		Items: []models.NewQuoteItem{
			{Name: "x", DetailQty: decimal.RequireFromString("1"), DetailUnitRate: decimal.RequireFromString("1.00")},
		},
	}); !utils.IsKind(err, utils.ErrorKindValidation) {
		t.Fatalf("expected Validation for child-of-child, got %v", err)
	}

	// both master and child show up for the reminder scan
	candidates, err := models.OverdueReminderCandidates(config.GetDB(), adminCtx)
	if err != nil {
		t.Fatalf("OverdueReminderCandidates: %v", err)
	}
	found := map[int]bool{}
	for _, c := range candidates {
		found[c.ID] = true
	}
	if !found[invoice.ID] || !found[child.ID] {
		t.Fatalf("expected master %d and child %d among candidates %v", invoice.ID, child.ID, found)
	}
}
