package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
)

var errorStatusByKind = map[utils.ErrorKind]int{
	utils.ErrorKindNotFound:          http.StatusNotFound,
	utils.ErrorKindInvalidTransition: http.StatusConflict,
	utils.ErrorKindForbidden:         http.StatusForbidden,
	utils.ErrorKindConflict:          http.StatusConflict,
	utils.ErrorKindValidation:        http.StatusUnprocessableEntity,
}

// respondError maps business error kinds to HTTP statuses. Infrastructure
// errors are logged with the correlation id and surfaced as an opaque 500.
func respondError(c *gin.Context, module string, funcName string, err error) {
	if kind, ok := utils.KindOf(err); ok {
		c.JSON(errorStatusByKind[kind], gin.H{"error": err.Error(), "kind": string(kind)})
		return
	}

	correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	config.LogError(config.GetLogger(), module, funcName, correlationId, nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": string(utils.ErrorKindValidation)})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id", "kind": string(utils.ErrorKindValidation)})
		return 0, false
	}
	return id, true
}

func optionalStringQuery(c *gin.Context, name string) *string {
	if v, ok := c.GetQuery(name); ok && v != "" {
		return &v
	}
	return nil
}

func optionalIntQuery(c *gin.Context, name string) *int {
	if v, ok := c.GetQuery(name); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}
