package dto

// Response is the envelope every endpoint answers with. Success responses
// carry Data, error responses carry Message; Code is the API result code,
// independent of the HTTP status.
type Response struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func NewSuccessResponse(code int, data interface{}) Response {
	return Response{
		Code:   code,
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(code int, message string) Response {
	return Response{
		Code:    code,
		Status:  "error",
		Message: message,
	}
}
