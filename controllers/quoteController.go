package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/reports"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

func CreateQuote(c *gin.Context) {
	var input models.NewQuote
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	quote, err := models.CreateQuote(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "quote", "CreateQuote", err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func UpdateQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewQuote
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	quote, err := models.UpdateQuote(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "quote", "UpdateQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

type transitionQuoteInput struct {
	Status string `json:"status" binding:"required"`
}

func TransitionQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input transitionQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	target, err := models.ParseQuoteStatus(input.Status)
	if err != nil {
		respondError(c, "quote", "TransitionQuote", utils.ValidationError(err.Error()))
		return
	}

	quote, err := models.TransitionQuoteStatus(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, "quote", "TransitionQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func ReviseQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	quote, err := models.ReviseQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", "ReviseQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func CloneQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	quote, err := models.CloneQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", "CloneQuote", err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func ConvertQuoteToInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.ConvertToInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		respondBindError(c, err)
		return
	}

	invoice, err := models.ConvertQuoteToInvoice(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "quote", "ConvertQuoteToInvoice", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func GetQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	quote, err := models.GetQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", "GetQuote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func GetQuotes(c *gin.Context) {
	quotes, err := models.GetQuotes(c.Request.Context(),
		optionalStringQuery(c, "status"), optionalIntQuery(c, "clientId"))
	if err != nil {
		respondError(c, "quote", "GetQuotes", err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func GetQuoteVersions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	versions, err := models.GetQuoteVersions(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", "GetQuoteVersions", err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func DownloadQuotePdf(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := models.RequireCapability(ctx, models.CapReportsView); err != nil {
		respondError(c, "quote", "DownloadQuotePdf", err)
		return
	}

	quote, err := models.GetQuote(ctx, id)
	if err != nil {
		respondError(c, "quote", "DownloadQuotePdf", err)
		return
	}
	pdf, err := reports.QuotePdf(quote)
	if err != nil {
		respondError(c, "quote", "DownloadQuotePdf", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+quote.QuoteNumber+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func DownloadQuoteRegister(c *gin.Context) {
	ctx := c.Request.Context()
	if err := models.RequireCapability(ctx, models.CapReportsView); err != nil {
		respondError(c, "quote", "DownloadQuoteRegister", err)
		return
	}

	quotes, err := reports.LoadQuoteRegister(ctx, optionalStringQuery(c, "status"))
	if err != nil {
		respondError(c, "quote", "DownloadQuoteRegister", err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=quotes.xlsx")
	if err := reports.WriteQuoteRegister(c.Writer, quotes); err != nil {
		respondError(c, "quote", "DownloadQuoteRegister", err)
	}
}
