package http

import (
	"errors"
	"net/http"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps a use case error to an HTTP status. Order matters: a missing
// actor is wrapped together with a validation error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrNoActor):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrForbiddenRole), errors.Is(err, rating.ErrNotOrderOwner):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, rating.ErrOrderNotDelivered),
		errors.Is(err, rating.ErrAlreadyRated):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}

// ErrorHandler renders echo errors and unmapped handler errors as Error
// bodies. Internal errors are logged, not echoed to the client.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			_ = writeError(c, he.Code, msg)
			return
		}

		code := StatusFor(err)
		msg := err.Error()
		if code == http.StatusInternalServerError {
			e.Logger.Error(err)
			msg = http.StatusText(code)
		}
		_ = writeError(c, code, msg)
	}
}
