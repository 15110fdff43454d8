package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/models"
)

func CreateClient(c *gin.Context) {
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := models.CreateClient(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "client", "CreateClient", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func UpdateClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := models.UpdateClient(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "client", "UpdateClient", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func DeleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	client, err := models.DeleteClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, "client", "DeleteClient", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func GetClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	client, err := models.GetClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, "client", "GetClient", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func GetClients(c *gin.Context) {
	clients, err := models.GetClients(c.Request.Context(), optionalStringQuery(c, "name"))
	if err != nil {
		respondError(c, "client", "GetClients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
