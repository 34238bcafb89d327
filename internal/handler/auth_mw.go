package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sergio11/instangular-rest-api/internal/apicodes"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/pkg/utils"
)

// authMiddleware resolves the Bearer session token into a full user record
// and attaches it to the request context. Anything short of a valid token for
// an existing user is a 403 with INVALID_TOKEN.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		h.abortInvalidToken(c)
		return
	}

	sessionToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if sessionToken == "" {
		h.abortInvalidToken(c)
		return
	}

	userIDString, err := utils.ParseSessionToken(sessionToken, []byte(h.cfg.Auth.JWTSecret))
	if err != nil {
		h.abortInvalidToken(c)
		return
	}

	userID, err := uuid.Parse(userIDString)
	if err != nil {
		h.abortInvalidToken(c)
		return
	}

	user, err := h.services.User.FindByID(c.Request.Context(), userID)
	if err != nil {
		h.abortInvalidToken(c)
		return
	}

	c.Set("user", *user)

	c.Next()
}

func (h *Handler) abortInvalidToken(c *gin.Context) {
	c.JSON(http.StatusForbidden, dto.NewErrorResponse(apicodes.InvalidToken, "Invalid token"))
	c.Abort()
}
