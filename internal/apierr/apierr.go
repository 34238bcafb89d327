package apierr

// APIError is a business-rule failure carrying the envelope code and the HTTP
// status it should be surfaced with. Anything else bubbling out of a service
// is treated as an internal error by the HTTP layer.
type APIError struct {
	Code    int
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

func New(code int, message string, status int) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}
