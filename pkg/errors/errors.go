package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrPayloadNotFound  = errors.New("payload not found")
	ErrInvalidPayload   = errors.New("payload is not valid JSON")
	ErrInvalidPayloadID = errors.New("payload id contains invalid characters")
	ErrItemizedTotal    = errors.New("total is derived from detail items; clear them first")
	ErrEmptyBaseURL     = errors.New("base URL is required to build a share link")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePayloadNotFound  = "PAYLOAD_NOT_FOUND"
	ErrCodeInvalidPayload   = "INVALID_PAYLOAD"
	ErrCodeInvalidPayloadID = "INVALID_PAYLOAD_ID"
	ErrCodeItemizedTotal    = "ITEMIZED_TOTAL"
	ErrCodeStorageError     = "STORAGE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapPayloadNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodePayloadNotFound,
		fmt.Sprintf("Payload with id %s not found", id),
		ErrPayloadNotFound,
	)
}

func WrapInvalidPayload(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPayload,
		"Payload body must be a JSON document",
		errors.Join(ErrInvalidPayload, err),
	)
}

func WrapStorageError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStorageError,
		"payload store operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
