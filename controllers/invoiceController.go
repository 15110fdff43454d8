package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/reports"
)

func GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "GetInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func GetInvoices(c *gin.Context) {
	invoices, err := models.GetInvoices(c.Request.Context(),
		optionalStringQuery(c, "paymentStatus"), optionalIntQuery(c, "clientId"))
	if err != nil {
		respondError(c, "invoice", "GetInvoices", err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func UpdateInvoiceMasterDetails(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.InvoiceMasterDetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := models.UpdateInvoiceMasterDetails(c.Request.Context(), id, &patch)
	if err != nil {
		respondError(c, "invoice", "UpdateInvoiceMasterDetails", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func FinalizeInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	invoice, err := models.FinalizeInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "FinalizeInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func VoidInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	invoice, err := models.VoidInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "VoidInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func CreateChildInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewChildInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	child, err := models.CreateChildInvoice(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "invoice", "CreateChildInvoice", err)
		return
	}
	c.JSON(http.StatusCreated, child)
}

func RecordInvoicePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewInvoicePayment
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := models.RecordInvoicePayment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "invoice", "RecordInvoicePayment", err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func GetInvoicePayments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	payments, err := models.GetInvoicePayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "GetInvoicePayments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func DownloadInvoicePdf(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := models.RequireCapability(ctx, models.CapReportsView); err != nil {
		respondError(c, "invoice", "DownloadInvoicePdf", err)
		return
	}

	invoice, err := models.GetInvoice(ctx, id)
	if err != nil {
		respondError(c, "invoice", "DownloadInvoicePdf", err)
		return
	}
	pdf, err := reports.InvoicePdf(invoice)
	if err != nil {
		respondError(c, "invoice", "DownloadInvoicePdf", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+invoice.InvoiceNumber+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func DownloadInvoiceRegister(c *gin.Context) {
	ctx := c.Request.Context()
	if err := models.RequireCapability(ctx, models.CapReportsView); err != nil {
		respondError(c, "invoice", "DownloadInvoiceRegister", err)
		return
	}

	invoices, err := reports.LoadInvoiceRegister(ctx, optionalStringQuery(c, "paymentStatus"))
	if err != nil {
		respondError(c, "invoice", "DownloadInvoiceRegister", err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=invoices.xlsx")
	if err := reports.WriteInvoiceRegister(c.Writer, invoices); err != nil {
		respondError(c, "invoice", "DownloadInvoiceRegister", err)
	}
}
