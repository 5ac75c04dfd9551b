package response

import "granja/pkg/apperror"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
}

// Message is the confirmation payload returned by mutating routes.
type Message struct {
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithCode is Error plus a machine-readable code.
func ErrorWithCode(statusCode int, code, err string) Response {
	r := Error(statusCode, err)
	r.Code = code
	return r
}

// FromError maps an error onto its HTTP status and envelope. Errors that are
// not an apperror.AppError become a generic 500.
func FromError(err error) (int, Response) {
	appErr := apperror.FromError(err)
	return appErr.StatusCode, ErrorWithCode(appErr.StatusCode, appErr.Code, appErr.Message)
}
