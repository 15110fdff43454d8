package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

type createSalesOrderInput struct {
	QuoteId int `json:"quote_id" binding:"required"`
}

func CreateSalesOrder(c *gin.Context) {
	var input createSalesOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := models.CreateSalesOrderFromQuote(c.Request.Context(), input.QuoteId)
	if err != nil {
		respondError(c, "salesOrder", "CreateSalesOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type transitionSalesOrderInput struct {
	Status string `json:"status" binding:"required"`
}

func TransitionSalesOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input transitionSalesOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	target, err := models.ParseSalesOrderStatus(input.Status)
	if err != nil {
		respondError(c, "salesOrder", "TransitionSalesOrder", utils.ValidationError(err.Error()))
		return
	}

	order, err := models.UpdateStatusSalesOrder(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, "salesOrder", "TransitionSalesOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func ConvertSalesOrderToInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.ConvertToInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		respondBindError(c, err)
		return
	}

	invoice, err := models.ConvertSalesOrderToInvoice(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "salesOrder", "ConvertSalesOrderToInvoice", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func GetSalesOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := models.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "salesOrder", "GetSalesOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func GetSalesOrders(c *gin.Context) {
	orders, err := models.GetSalesOrders(c.Request.Context(), optionalStringQuery(c, "status"))
	if err != nil {
		respondError(c, "salesOrder", "GetSalesOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
