package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"admin-hub/internal/domain"
	"admin-hub/internal/permission"
	"admin-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var denied *permission.AccessDeniedError
	if errors.As(err, &denied) {
		return echo.NewHTTPError(denied.StatusCode(), denied.Error()).SetInternal(err)
	}

	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": "invalid input",
			"errors":  verr.Errors,
		}).SetInternal(err)
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required").SetInternal(err)

	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password").SetInternal(err)

	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid input").SetInternal(err)

	case errors.Is(err, domain.ErrCSRFMismatch):
		return echo.NewHTTPError(http.StatusForbidden, "invalid csrf token").SetInternal(err)

	case errors.Is(err, domain.ErrUnknownEntity),
		errors.Is(err, domain.ErrOrganizationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found").SetInternal(err)

	case errors.Is(err, domain.ErrBackendUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "backend unavailable").SetInternal(err)

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded").SetInternal(err)

	case errors.Is(err, domain.ErrCSRFSecretMissing),
		errors.Is(err, domain.ErrMalformedTokens):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error").SetInternal(err)

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}

// HTTPErrorHandler maps domain errors before handing them to echo's default
// handler. Install it as e.HTTPErrorHandler.
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		he := mapDomainError(err)
		if he.Code >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), "request error", "status", he.Code, "error", err)
		}
		e.DefaultHTTPErrorHandler(he, c)
	}
}
