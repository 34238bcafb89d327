package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sergio11/instangular-rest-api/internal/apicodes"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/pkg/utils"
)

func (h *Handler) accountsSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.services.Account.SignUp(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.CreateUserSuccess, result))
}

func (h *Handler) accountsConfirm(c *gin.Context) {
	token := c.Param("token")
	if len(token) != utils.ConfirmationTokenLength {
		respondValidationError(c, "\"token\" length must be 16 characters long")
		return
	}

	if err := h.services.Account.ConfirmAccount(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.AccountActivated, "The account was successfully activated"))
}

func (h *Handler) accountsSignIn(c *gin.Context) {
	var input dto.SignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	token, err := h.services.Account.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.LoginSuccess, token))
}

func (h *Handler) accountsSignInWithFacebook(c *gin.Context) {
	var input dto.FacebookSignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	token, err := h.services.Account.SignInWithFacebook(c.Request.Context(), input.ID, input.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.LoginSuccessWithFacebook, token))
}

func (h *Handler) accountsRequestPasswordReset(c *gin.Context) {
	var input dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	message, err := h.services.Account.RequestPasswordReset(c.Request.Context(), input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.PasswordResetRequestMade, message))
}

func (h *Handler) accountsResetPassword(c *gin.Context) {
	token := c.Param("token")
	if len(token) != utils.ConfirmationTokenLength {
		respondValidationError(c, "\"token\" length must be 16 characters long")
		return
	}

	var input dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.services.Account.ResetPassword(c.Request.Context(), token, input.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.PasswordSuccessfullyReset, "Password successfully reset"))
}
