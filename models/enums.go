package models

import "fmt"

type QuoteStatus string

const (
	QuoteStatusDraft           QuoteStatus = "Draft"
	QuoteStatusSent            QuoteStatus = "Sent"
	QuoteStatusApproved        QuoteStatus = "Approved"
	QuoteStatusRejected        QuoteStatus = "Rejected"
	QuoteStatusInvoiced        QuoteStatus = "Invoiced"
	QuoteStatusClosedPaid      QuoteStatus = "Closed Paid"
	QuoteStatusClosedCancelled QuoteStatus = "Closed Cancelled"
)

var quoteStatusByName = map[string]QuoteStatus{
	"Draft":            QuoteStatusDraft,
	"Sent":             QuoteStatusSent,
	"Approved":         QuoteStatusApproved,
	"Rejected":         QuoteStatusRejected,
	"Invoiced":         QuoteStatusInvoiced,
	"Closed Paid":      QuoteStatusClosedPaid,
	"Closed Cancelled": QuoteStatusClosedCancelled,
}

func ParseQuoteStatus(s string) (QuoteStatus, error) {
	status, ok := quoteStatusByName[s]
	if !ok {
		return "", fmt.Errorf("%s is not a valid quote status", s)
	}
	return status, nil
}

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusConfirmed InvoiceStatus = "Confirmed"
	InvoiceStatusVoid      InvoiceStatus = "Void"
)

type InvoicePaymentStatus string

const (
	InvoicePaymentStatusPending InvoicePaymentStatus = "Pending"
	InvoicePaymentStatusPartial InvoicePaymentStatus = "Partial"
	InvoicePaymentStatusPaid    InvoicePaymentStatus = "Paid"
	InvoicePaymentStatusOverdue InvoicePaymentStatus = "Overdue"
)

type SalesOrderStatus string

const (
	SalesOrderStatusConfirmed SalesOrderStatus = "Confirmed"
	SalesOrderStatusFulfilled SalesOrderStatus = "Fulfilled"
	SalesOrderStatusClosed    SalesOrderStatus = "Closed"
	SalesOrderStatusCancelled SalesOrderStatus = "Cancelled"
)

var salesOrderStatusByName = map[string]SalesOrderStatus{
	"Confirmed": SalesOrderStatusConfirmed,
	"Fulfilled": SalesOrderStatusFulfilled,
	"Closed":    SalesOrderStatusClosed,
	"Cancelled": SalesOrderStatusCancelled,
}

func ParseSalesOrderStatus(s string) (SalesOrderStatus, error) {
	status, ok := salesOrderStatusByName[s]
	if !ok {
		return "", fmt.Errorf("%s is not a valid sales order status", s)
	}
	return status, nil
}

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "Draft"
	PurchaseOrderStatusIssued    PurchaseOrderStatus = "Issued"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "Received"
	PurchaseOrderStatusClosed    PurchaseOrderStatus = "Closed"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "Cancelled"
)

var purchaseOrderStatusByName = map[string]PurchaseOrderStatus{
	"Draft":     PurchaseOrderStatusDraft,
	"Issued":    PurchaseOrderStatusIssued,
	"Received":  PurchaseOrderStatusReceived,
	"Closed":    PurchaseOrderStatusClosed,
	"Cancelled": PurchaseOrderStatusCancelled,
}

func ParsePurchaseOrderStatus(s string) (PurchaseOrderStatus, error) {
	status, ok := purchaseOrderStatusByName[s]
	if !ok {
		return "", fmt.Errorf("%s is not a valid purchase order status", s)
	}
	return status, nil
}

type PaymentTerms string

const (
	PaymentTermsNet15        PaymentTerms = "Net15"
	PaymentTermsNet30        PaymentTerms = "Net30"
	PaymentTermsNet45        PaymentTerms = "Net45"
	PaymentTermsNet60        PaymentTerms = "Net60"
	PaymentTermsDueOnReceipt PaymentTerms = "DueOnReceipt"
	PaymentTermsCustom       PaymentTerms = "Custom"
)

var paymentTermsByName = map[string]PaymentTerms{
	"Net15":        PaymentTermsNet15,
	"Net30":        PaymentTermsNet30,
	"Net45":        PaymentTermsNet45,
	"Net60":        PaymentTermsNet60,
	"DueOnReceipt": PaymentTermsDueOnReceipt,
	"Custom":       PaymentTermsCustom,
}

func ParsePaymentTerms(s string) (PaymentTerms, error) {
	terms, ok := paymentTermsByName[s]
	if !ok {
		return "", fmt.Errorf("%s is not a valid payment terms value", s)
	}
	return terms, nil
}

type UserRole string

const (
	UserRoleAdmin              UserRole = "admin"
	UserRoleSalesExecutive     UserRole = "sales_executive"
	UserRoleSalesManager       UserRole = "sales_manager"
	UserRolePurchaseOperations UserRole = "purchase_operations"
	UserRoleFinanceAccounts    UserRole = "finance_accounts"
	UserRoleViewer             UserRole = "viewer"
)

var userRoleByName = map[string]UserRole{
	"admin":               UserRoleAdmin,
	"sales_executive":     UserRoleSalesExecutive,
	"sales_manager":       UserRoleSalesManager,
	"purchase_operations": UserRolePurchaseOperations,
	"finance_accounts":    UserRoleFinanceAccounts,
	"viewer":              UserRoleViewer,
}

func ParseUserRole(s string) (UserRole, error) {
	role, ok := userRoleByName[s]
	if !ok {
		return "", fmt.Errorf("%s is not a valid user role", s)
	}
	return role, nil
}
