package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/domain"
)

type resolved struct {
	status  int
	code    string
	message string
	details map[string][]string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status and error code.
//   - Logs unexpected errors internally without leaking details to the client
//     unless dev is set.
//   - Renders the {"success":false,"message","error":{code,details}} envelope.
func NewHTTPErrorHandler(log zerolog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		r := resolveError(err)
		if r.status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
			if dev {
				r.message = err.Error()
			}
		}
		_ = response.Fail(c, r.status, r.code, r.message, r.details)
	}
}

func resolveError(err error) resolved {
	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return resolveHTTPError(he)
	}

	message := "internal server error"
	var details map[string][]string
	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
		details = de.Details
	}
	withDefault := func(status int, code, fallback string) resolved {
		if de == nil || message == "" {
			message = fallback
		}
		return resolved{status: status, code: code, message: message, details: details}
	}

	// Known domain errors → deterministic HTTP codes. The password-change
	// mismatch is checked before the generic credentials failure.
	switch {
	case errors.Is(err, domain.ErrCurrentPasswordMismatch):
		return withDefault(http.StatusBadRequest, response.CodeInvalidCredentials, "current password is incorrect")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return withDefault(http.StatusUnauthorized, response.CodeInvalidCredentials, domain.InvalidCredentials().Message)
	case errors.Is(err, domain.ErrTokenExpired):
		return withDefault(http.StatusUnauthorized, response.CodeTokenExpired, "token has expired")
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthorized):
		return withDefault(http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return withDefault(http.StatusForbidden, response.CodeForbidden, "access forbidden")
	case errors.Is(err, domain.ErrValidation):
		return withDefault(http.StatusBadRequest, response.CodeValidation, "validation failed")
	case errors.Is(err, domain.ErrNotFound):
		return withDefault(http.StatusNotFound, response.CodeNotFound, "resource not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return withDefault(http.StatusConflict, response.CodeAlreadyExists, "resource already exists")
	case errors.Is(err, domain.ErrDatabase):
		return resolved{status: http.StatusInternalServerError, code: response.CodeDatabase, message: "database error"}
	case errors.Is(err, domain.ErrExternalService):
		return resolved{status: http.StatusInternalServerError, code: response.CodeExternalService, message: "external service error"}
	}
	return resolved{status: http.StatusInternalServerError, code: response.CodeInternal, message: "internal server error"}
}

func resolveHTTPError(he *echo.HTTPError) resolved {
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	switch {
	case he.Code == http.StatusNotFound:
		return resolved{status: http.StatusNotFound, code: response.CodeNotFound, message: "endpoint not found"}
	case he.Code == http.StatusMethodNotAllowed:
		return resolved{status: he.Code, code: response.CodeNotFound, message: msg}
	case he.Code == http.StatusUnauthorized:
		return resolved{status: he.Code, code: response.CodeUnauthorized, message: msg}
	case he.Code == http.StatusForbidden:
		return resolved{status: he.Code, code: response.CodeForbidden, message: msg}
	case he.Code < http.StatusInternalServerError:
		// Bind failures, unsupported media types and oversized bodies.
		return resolved{status: he.Code, code: response.CodeValidation, message: msg}
	}
	return resolved{status: he.Code, code: response.CodeInternal, message: http.StatusText(he.Code)}
}
