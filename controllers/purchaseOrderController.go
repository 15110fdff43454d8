package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

func CreatePurchaseOrder(c *gin.Context) {
	var input models.NewPurchaseOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := models.CreatePurchaseOrder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "purchaseOrder", "CreatePurchaseOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func UpdatePurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewPurchaseOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := models.UpdatePurchaseOrder(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "purchaseOrder", "UpdatePurchaseOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type transitionPurchaseOrderInput struct {
	Status string `json:"status" binding:"required"`
}

func TransitionPurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input transitionPurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	target, err := models.ParsePurchaseOrderStatus(input.Status)
	if err != nil {
		respondError(c, "purchaseOrder", "TransitionPurchaseOrder", utils.ValidationError(err.Error()))
		return
	}

	order, err := models.UpdateStatusPurchaseOrder(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, "purchaseOrder", "TransitionPurchaseOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func DeletePurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := models.DeletePurchaseOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "purchaseOrder", "DeletePurchaseOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func GetPurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := models.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "purchaseOrder", "GetPurchaseOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func GetPurchaseOrders(c *gin.Context) {
	orders, err := models.GetPurchaseOrders(c.Request.Context(),
		optionalStringQuery(c, "status"), optionalStringQuery(c, "vendorName"))
	if err != nil {
		respondError(c, "purchaseOrder", "GetPurchaseOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
