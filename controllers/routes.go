package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/middlewares"
)

// RegisterRoutes wires the REST surface. PDF and excel endpoints only exist
// when their feature flags are on; everything else is always mounted.
func RegisterRoutes(r *gin.Engine, flags config.Flags) {
	r.POST("/api/auth/signin", Signin)

	api := r.Group("/api", middlewares.RequireAuth())

	api.POST("/users", CreateUser)
	api.GET("/users", GetUsers)

	api.POST("/clients", CreateClient)
	api.GET("/clients", GetClients)
	api.GET("/clients/:id", GetClient)
	api.PUT("/clients/:id", UpdateClient)
	api.DELETE("/clients/:id", DeleteClient)

	api.POST("/quotes", CreateQuote)
	api.GET("/quotes", GetQuotes)
	api.GET("/quotes/:id", GetQuote)
	api.PUT("/quotes/:id", UpdateQuote)
	api.POST("/quotes/:id/transition", TransitionQuote)
	api.POST("/quotes/:id/revise", ReviseQuote)
	api.POST("/quotes/:id/clone", CloneQuote)
	api.POST("/quotes/:id/convert", ConvertQuoteToInvoice)
	api.GET("/quotes/:id/versions", GetQuoteVersions)

	api.POST("/sales-orders", CreateSalesOrder)
	api.GET("/sales-orders", GetSalesOrders)
	api.GET("/sales-orders/:id", GetSalesOrder)
	api.POST("/sales-orders/:id/transition", TransitionSalesOrder)
	api.POST("/sales-orders/:id/convert", ConvertSalesOrderToInvoice)

	api.POST("/purchase-orders", CreatePurchaseOrder)
	api.GET("/purchase-orders", GetPurchaseOrders)
	api.GET("/purchase-orders/:id", GetPurchaseOrder)
	api.PUT("/purchase-orders/:id", UpdatePurchaseOrder)
	api.POST("/purchase-orders/:id/transition", TransitionPurchaseOrder)
	api.DELETE("/purchase-orders/:id", DeletePurchaseOrder)

	api.GET("/invoices", GetInvoices)
	api.GET("/invoices/:id", GetInvoice)
	api.PATCH("/invoices/:id", UpdateInvoiceMasterDetails)
	api.POST("/invoices/:id/finalize", FinalizeInvoice)
	api.POST("/invoices/:id/void", VoidInvoice)
	api.POST("/invoices/:id/children", CreateChildInvoice)
	api.POST("/invoices/:id/payments", RecordInvoicePayment)
	api.GET("/invoices/:id/payments", GetInvoicePayments)

	if flags.PdfDownload {
		api.GET("/quotes/:id/pdf", DownloadQuotePdf)
		api.GET("/invoices/:id/pdf", DownloadInvoicePdf)
	}
	if flags.ExcelExport {
		api.GET("/reports/quotes.xlsx", DownloadQuoteRegister)
		api.GET("/reports/invoices.xlsx", DownloadInvoiceRegister)
	}
}
