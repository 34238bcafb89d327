// Package apicodes defines the numeric result codes returned inside every
// response envelope. Clients switch on these instead of HTTP statuses.
package apicodes

// Account management codes.
const (
	LoginSuccess              = 1000
	LoginSuccessWithFacebook  = 1001
	LoginFail                 = 1005
	InvalidToken              = 1006
	LoginFailWithFacebook     = 1007
	AccountDisabled           = 1008
	CreateUserSuccess         = 1009
	UserAlreadyExists         = 1010
	CreateUserFailed          = 1011
	AccountActivated          = 1012
	InvalidConfirmationToken  = 1013
	PasswordAlreadyRequested  = 1014
	PasswordResetRequestMade  = 1015
	NoSuchUserExist           = 1016
	PasswordSuccessfullyReset = 1017
)

// User management codes.
const (
	UserFound          = 2000
	UserNotFound       = 2001
	UpdateUserSuccess  = 2002
	UpdateUserFail     = 2003
	UserDeleted        = 2004
	UserList           = 2005
	FollowingTheUser   = 2006
	UnfollowingTheUser = 2007
	CanNotFollow       = 2008
	UserFollows        = 2009
	UserFollowedBy     = 2010
)

// Media management codes.
const (
	MediaFound         = 3000
	MediaNotFound      = 3001
	CreateMediaSuccess = 3002
	CreateMediaFail    = 3003
	MediaDeleted       = 3004
	MediaList          = 3005
	MediaSearchResults = 3006
)

// Generic codes.
const (
	ValidationError = 9000
	AccessDenied    = 9001
	APINotFound     = 9002
	InternalError   = 9003
)
