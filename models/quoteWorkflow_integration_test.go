package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"github.com/shopspring/decimal"
)

// End-to-end workflow against real MySQL and redis in docker:
// client -> quote -> lifecycle -> revise/clone -> convert -> payments.
func TestQuoteToInvoiceWorkflow(t *testing.T) {
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
		Name:  "Acme Traders",
		Email: "accounts@acme.test",
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	newQuote := &models.NewQuote{
		ClientId:        client.ID,
		Discount:        decimal.RequireFromString("10"),
		Cgst:            decimal.RequireFromString("9"),
		Sgst:            decimal.RequireFromString("9"),
		ShippingCharges: decimal.RequireFromString("20"),
		Items: []models.NewQuoteItem{
			{Name: "Widget", DetailQty: decimal.RequireFromString("2"), DetailUnitRate: decimal.RequireFromString("100.00")},
			{Name: "Gadget", DetailQty: decimal.RequireFromString("1"), DetailUnitRate: decimal.RequireFromString("50.00")},
		},
	}
	quote, err := models.CreateQuote(adminCtx, newQuote)
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if !strings.HasPrefix(quote.QuoteNumber, "QT-") {
		t.Fatalf("expected QT- prefixed number, got %s", quote.QuoteNumber)
	}
	if got := utils.FormatMoney(quote.Subtotal); got != "250.00" {
		t.Fatalf("subtotal expected 250.00, got %s", got)
	}
	if got := utils.FormatMoney(quote.Total); got != "278.00" {
		t.Fatalf("total expected 278.00, got %s", got)
	}

	// a second quote gets the next sequential number
	second, err := models.CreateQuote(adminCtx, newQuote)
	if err != nil {
		t.Fatalf("CreateQuote (second): %v", err)
	}
	if second.QuoteNumber == quote.QuoteNumber {
		t.Fatalf("quote numbers must be unique, both got %s", quote.QuoteNumber)
	}

	// forward lifecycle
	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusSent); err != nil {
		t.Fatalf("Draft -> Sent: %v", err)
	}
	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusApproved); err != nil {
		t.Fatalf("Sent -> Approved: %v", err)
	}

	// approved quotes are not editable
	if _, err := models.UpdateQuote(adminCtx, quote.ID, newQuote); !utils.IsKind(err, utils.ErrorKindValidation) {
		t.Fatalf("expected Validation error updating approved quote, got %v", err)
	}

	// revise: snapshot + version bump + back to draft, same number
	revised, err := models.ReviseQuote(adminCtx, quote.ID)
	if err != nil {
		t.Fatalf("ReviseQuote: %v", err)
	}
	if revised.Version != 2 || revised.CurrentStatus != models.QuoteStatusDraft {
		t.Fatalf("expected version 2 draft, got v%d %s", revised.Version, revised.CurrentStatus)
	}
	if revised.QuoteNumber != quote.QuoteNumber {
		t.Fatalf("revision must keep the quote number, got %s", revised.QuoteNumber)
	}
	versions, err := models.GetQuoteVersions(adminCtx, quote.ID)
	if err != nil {
		t.Fatalf("GetQuoteVersions: %v", err)
	}
	if len(versions) != 1 || versions[0].Version != 1 {
		t.Fatalf("expected one v1 snapshot, got %+v", versions)
	}

	// clone: new number, version 1, draft
	clone, err := models.CloneQuote(adminCtx, quote.ID)
	if err != nil {
		t.Fatalf("CloneQuote: %v", err)
	}
	if clone.QuoteNumber == quote.QuoteNumber {
		t.Fatalf("clone must get its own number")
	}
	if clone.Version != 1 || clone.CurrentStatus != models.QuoteStatusDraft {
		t.Fatalf("expected fresh v1 draft clone, got v%d %s", clone.Version, clone.CurrentStatus)
	}
	if !clone.Total.Equal(quote.Total) {
		t.Fatalf("clone must copy totals: %s vs %s", clone.Total, quote.Total)
	}

	// drive the revised quote to approved again and convert
	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusSent); err != nil {
		t.Fatalf("revised Draft -> Sent: %v", err)
	}
	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusApproved); err != nil {
		t.Fatalf("revised Sent -> Approved: %v", err)
	}

	invoice, err := models.ConvertQuoteToInvoice(adminCtx, quote.ID, &models.ConvertToInvoiceInput{
		PaymentTerms: "Net30",
	})
	if err != nil {
		t.Fatalf("ConvertQuoteToInvoice: %v", err)
	}
	if !strings.HasPrefix(invoice.InvoiceNumber, "INV-") {
		t.Fatalf("expected INV- prefixed number, got %s", invoice.InvoiceNumber)
	}
	if !invoice.Total.Equal(quote.Total) {
		t.Fatalf("invoice must carry the quote total: %s vs %s", invoice.Total, quote.Total)
	}
	if invoice.PaymentStatus != models.InvoicePaymentStatusPending {
		t.Fatalf("new invoice must be Pending, got %s", invoice.PaymentStatus)
	}
	if invoice.DueDate == nil {
		t.Fatalf("invoice must have a computed due date")
	}

	converted, err := models.GetQuote(adminCtx, quote.ID)
	if err != nil {
		t.Fatalf("GetQuote after convert: %v", err)
	}
	if converted.CurrentStatus != models.QuoteStatusInvoiced {
		t.Fatalf("quote must be Invoiced after conversion, got %s", converted.CurrentStatus)
	}

	// second conversion of the same quote conflicts
	if _, err := models.ConvertQuoteToInvoice(adminCtx, quote.ID, nil); !utils.IsKind(err, utils.ErrorKindConflict) {
		t.Fatalf("expected Conflict on double conversion, got %v", err)
	}

	// invoiced quotes are frozen
	if _, err := models.TransitionQuoteStatus(adminCtx, quote.ID, models.QuoteStatusClosedPaid); !utils.IsKind(err, utils.ErrorKindInvalidTransition) {
		t.Fatalf("expected InvalidTransition closing invoiced quote, got %v", err)
	}
	if _, err := models.ReviseQuote(adminCtx, quote.ID); !utils.IsKind(err, utils.ErrorKindInvalidTransition) {
		t.Fatalf("expected InvalidTransition revising invoiced quote, got %v", err)
	}

	// finalize, then financial edits are rejected
	if _, err := models.FinalizeInvoice(adminCtx, invoice.ID); err != nil {
		t.Fatalf("FinalizeInvoice: %v", err)
	}
	newDiscount := decimal.RequireFromString("50")
	_, err = models.UpdateInvoiceMasterDetails(adminCtx, invoice.ID, &models.InvoiceMasterDetailsPatch{
		Discount: &newDiscount,
	})
	if !utils.IsKind(err, utils.ErrorKindForbidden) {
		t.Fatalf("expected Forbidden for financial edit after finalization, got %v", err)
	}

	// free-text edits stay open
	notes := "updated delivery instructions"
	patched, err := models.UpdateInvoiceMasterDetails(adminCtx, invoice.ID, &models.InvoiceMasterDetailsPatch{
		DeliveryNotes: &notes,
	})
	if err != nil {
		t.Fatalf("free-text patch after finalization: %v", err)
	}
	if patched.DeliveryNotes != notes {
		t.Fatalf("delivery notes not applied")
	}

	// payments: partial then overpay rejection then settle
	if _, err := models.RecordInvoicePayment(adminCtx, invoice.ID, &models.NewInvoicePayment{
		Amount: decimal.RequireFromString("100.00"),
	}); err != nil {
		t.Fatalf("RecordInvoicePayment (partial): %v", err)
	}
	afterPartial, err := models.GetInvoice(adminCtx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice after partial: %v", err)
	}
	if afterPartial.PaymentStatus != models.InvoicePaymentStatusPartial {
		t.Fatalf("expected Partial, got %s", afterPartial.PaymentStatus)
	}

	if _, err := models.RecordInvoicePayment(adminCtx, invoice.ID, &models.NewInvoicePayment{
		Amount: decimal.RequireFromString("1000.00"),
	}); !utils.IsKind(err, utils.ErrorKindValidation) {
		t.Fatalf("expected Validation for overpayment, got %v", err)
	}

	if _, err := models.RecordInvoicePayment(adminCtx, invoice.ID, &models.NewInvoicePayment{
		Amount: afterPartial.Outstanding(),
	}); err != nil {
		t.Fatalf("RecordInvoicePayment (settle): %v", err)
	}
	settled, err := models.GetInvoice(adminCtx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice after settle: %v", err)
	}
	if settled.PaymentStatus != models.InvoicePaymentStatusPaid {
		t.Fatalf("expected Paid, got %s", settled.PaymentStatus)
	}

	payments, err := models.GetInvoicePayments(adminCtx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoicePayments: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}

	// capability enforcement through a real call path
	viewerCtx := utils.SetUserIdInContext(ctx, 2)
	viewerCtx = utils.SetUserRoleInContext(viewerCtx, string(models.UserRoleViewer))
	if _, err := models.CreateQuote(viewerCtx, newQuote); !utils.IsKind(err, utils.ErrorKindForbidden) {
		t.Fatalf("expected Forbidden for viewer creating quotes, got %v", err)
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("salesdesk-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		out, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil && strings.Contains(out, "PONG") {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("salesdesk-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=salesdesk_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
