package handler

import (
	"errors"
	"net/http"

	apperrors "github.com/stefanpalsson415/family-care-api/pkg/errors"
)

type Response struct {
	Status   string      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// NewSuccessResponseWithWarnings reports a succeeded operation whose
// best-effort side effects partially failed.
func NewSuccessResponseWithWarnings(data interface{}, warnings []string) *Response {
	return &Response{
		Status:   "success",
		Data:     data,
		Warnings: warnings,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// StatusFromError maps application error codes onto HTTP status codes.
func StatusFromError(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrNotFound:
			return http.StatusNotFound
		case apperrors.ErrBadRequest:
			return http.StatusBadRequest
		case apperrors.ErrUnauthorized:
			return http.StatusUnauthorized
		case apperrors.ErrForbidden:
			return http.StatusForbidden
		}
	}
	return http.StatusInternalServerError
}
