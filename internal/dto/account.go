package dto

type SignUpRequest struct {
	Fullname     string  `json:"fullname" binding:"required"`
	Username     string  `json:"username" binding:"required,min=3,max=30"`
	Password     string  `json:"password" binding:"required,min=8,max=48"`
	Email        string  `json:"email" binding:"required,email"`
	Website      *string `json:"website" binding:"omitempty,url"`
	Biography    *string `json:"biography"`
	MobileNumber *string `json:"mobile_number"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type FacebookSignInRequest struct {
	ID    string `json:"id" binding:"required"`
	Token string `json:"token" binding:"required"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=48"`
}

// SignUpResult is the payload of a successful signup.
type SignUpResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MailTokenDto is the message published for the external mail service.
type MailTokenDto struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
