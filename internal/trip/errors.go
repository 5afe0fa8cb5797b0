package trip

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
	ErrorCodeRenderFailure   ErrorCode = "RENDER_FAILURE"
)

// AppError carries the HTTP status and code a handler should answer with.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func validationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: msg}
}

func internalError(msg string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: ErrorCodeInternalFailure, Message: msg, Err: err}
}
