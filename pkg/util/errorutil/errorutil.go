package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes recorded in logs and metrics.
const (
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeHTTP             = "HTTP_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// NewInvalidPayload reports a body that could not be parsed as a lead.
func NewInvalidPayload(err error) error {
	return NewDomainError(CodeInvalidPayload, "invalid JSON payload", http.StatusBadRequest, err)
}

// NewStoreError reports a failed append or read against the sheet.
func NewStoreError(err error) error {
	return NewDomainError(CodeStoreUnavailable, "failed to save lead", http.StatusInternalServerError, err)
}

// NewNotFound reports a missing resource.
func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := CodeHTTP
		if fiberErr.Code == http.StatusNotFound {
			code = CodeNotFound
		}
		return NewDomainError(code, fiberErr.Message, fiberErr.Code, nil)
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Diagnostic is the message shown to callers: the summary plus the wrapped cause, if any.
func (e *DomainError) Diagnostic() string {
	if e.Code == CodeInternal {
		return e.Message
	}
	return e.Error()
}
