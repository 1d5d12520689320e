package pkg

import "github.com/gin-gonic/gin"

// AppError is the error shape handlers translate domain failures into.
// Code is a stable machine-readable identifier; Message is safe to show
// to API clients; Err keeps the underlying cause for logging only.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// ToHTTPError renders the client-facing envelope. The underlying cause
// is intentionally omitted.
func (e *AppError) ToHTTPError() gin.H {
	return gin.H{
		"success": false,
		"code":    e.Code,
		"message": e.Message,
	}
}
