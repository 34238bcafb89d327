package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sergio11/instangular-rest-api/internal/apicodes"
	"github.com/sergio11/instangular-rest-api/internal/apierr"
	"github.com/sergio11/instangular-rest-api/internal/dto"
)

func respondError(c *gin.Context, err error) {
	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, dto.NewErrorResponse(apiErr.Code, apiErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(apicodes.InternalError, "internal server error"))
}

func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(apicodes.ValidationError, message))
}
