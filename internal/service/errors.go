package service

import (
	"net/http"

	"github.com/sergio11/instangular-rest-api/internal/apicodes"
	"github.com/sergio11/instangular-rest-api/internal/apierr"
)

var (
	ErrInternal = apierr.New(apicodes.InternalError, "internal server error", http.StatusInternalServerError)

	ErrLoginFail                = apierr.New(apicodes.LoginFail, "Username or password invalid.", http.StatusNotFound)
	ErrAccountDisabled          = apierr.New(apicodes.AccountDisabled, "The account is disabled", http.StatusForbidden)
	ErrUserAlreadyExists        = apierr.New(apicodes.UserAlreadyExists, "User already exists", http.StatusBadRequest)
	ErrInvalidConfirmationToken = apierr.New(apicodes.InvalidConfirmationToken, "Invalid confirmation token", http.StatusBadRequest)
	ErrPasswordAlreadyRequested = apierr.New(apicodes.PasswordAlreadyRequested, "The password for this user has already been requested within 24 hours.", http.StatusBadRequest)
	ErrNoSuchUserExist          = apierr.New(apicodes.NoSuchUserExist, "No such user exists", http.StatusNotFound)
	ErrLoginFailWithFacebook    = apierr.New(apicodes.LoginFailWithFacebook, "Facebook login failed", http.StatusBadRequest)
	ErrInvalidToken             = apierr.New(apicodes.InvalidToken, "Invalid token", http.StatusForbidden)

	ErrUserNotFound = apierr.New(apicodes.UserNotFound, "User not found", http.StatusNotFound)
	ErrCanNotFollow = apierr.New(apicodes.CanNotFollow, "You can not follow yourself", http.StatusBadRequest)

	ErrMediaNotFound           = apierr.New(apicodes.MediaNotFound, "No such media exists", http.StatusNotFound)
	ErrDeleteMediaAccessDenied = apierr.New(apicodes.AccessDenied, "Access Denied - You don't have permission to: delete media", http.StatusForbidden)
)
