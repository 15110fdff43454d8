package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/models"
)

func Signin(c *gin.Context) {
	var input models.SigninInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	payload, err := models.Signin(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "auth", "Signin", err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func CreateUser(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "auth", "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func GetUsers(c *gin.Context) {
	users, err := models.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, "auth", "GetUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
