package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code    string
	Message string
	Detail  string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTransport    = "TRANSPORT_ERROR"
	ErrCodeAPI          = "API_ERROR"
	ErrCodePayment      = "PAYMENT_ERROR"
	ErrCodeUpload       = "UPLOAD_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message)
}

func TransportError(message string) *AppError {
	return NewAppError(ErrCodeTransport, message)
}

func APIError(message string) *AppError {
	return NewAppError(ErrCodeAPI, message)
}

// PaymentError carries the provider's message verbatim so the checkout
// view can show it and stay interactive for a retry.
func PaymentError(message string) *AppError {
	return NewAppError(ErrCodePayment, message)
}

func UploadError(message string) *AppError {
	return NewAppError(ErrCodeUpload, message)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
