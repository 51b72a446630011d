package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewAPIError creates a new APIError with the given parameters
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with additional details
func NewAPIErrorWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

var (
	ErrInvalidParameter  = NewAPIError(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")
	ErrNotFound          = NewAPIError(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrRateLimitExceeded = NewAPIError(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer    = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrDatasetLoading    = NewAPIError(http.StatusServiceUnavailable, "DATASET_LOADING", "Dataset is still loading")
)

// ErrValidation creates a validation error for fields.
func ErrValidation(fields ...ValidationError) *APIError {
	return NewAPIErrorWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", fields)
}

// DatasetLoadFailed reports the loader failure that left the service without data.
func DatasetLoadFailed(err error) *APIError {
	return NewAPIErrorWithDetails(http.StatusBadGateway, "DATASET_LOAD_FAILED", "Dataset could not be loaded", err.Error())
}

// handleError renders every error returned by a handler as an APIError.
func (h *Handler) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &httpErr):
		apiErr = fromHTTPError(httpErr)
	default:
		h.logger.Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
		)
		apiErr = ErrInternalServer
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Warn("request failed", zap.String("error_code", apiErr.ErrorCode), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apiErr.StatusCode)
	} else {
		err = c.JSON(apiErr.StatusCode, apiErr)
	}
	if err != nil {
		h.logger.Error("failed to write error response", zap.Error(err))
	}
}

func fromHTTPError(he *echo.HTTPError) *APIError {
	switch he.Code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimitExceeded
	}
	code := strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
	return NewAPIError(he.Code, code, fmt.Sprint(he.Message))
}
