// Package response renders the JSON envelope shared by every endpoint.
package response

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Error codes returned in error.code.
const (
	CodeUnauthorized       = "AUTH_001"
	CodeForbidden          = "AUTH_002"
	CodeInvalidCredentials = "AUTH_003"
	CodeTokenExpired       = "AUTH_004"
	CodeValidation         = "VAL_001"
	CodeNotFound           = "RES_001"
	CodeAlreadyExists      = "RES_002"
	CodeInternal           = "SRV_001"
	CodeDatabase           = "SRV_002"
	CodeExternalService    = "SRV_003"
	CodeRateLimit          = "RATE_LIMIT"
	CodeAuthRateLimit      = "AUTH_RATE_LIMIT"
)

// Meta is the pagination block of list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Success struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Meta      *Meta  `json:"meta,omitempty"`
	Timestamp string `json:"timestamp"`
}

type ErrorBody struct {
	Code    string              `json:"code"`
	Details map[string][]string `json:"details,omitempty"`
}

// Failure carries no timestamp: two identical failures render byte-identical bodies.
type Failure struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   ErrorBody `json:"error"`
}

func OK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Success{Success: true, Message: message, Data: data, Timestamp: now()})
}

func Paged(c echo.Context, status int, message string, data any, meta Meta) error {
	return c.JSON(status, Success{Success: true, Message: message, Data: data, Meta: &meta, Timestamp: now()})
}

func Fail(c echo.Context, status int, code, message string, details map[string][]string) error {
	return c.JSON(status, Failure{Message: message, Error: ErrorBody{Code: code, Details: details}})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
