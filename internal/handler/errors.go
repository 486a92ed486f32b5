package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"recipe-pack-payments/internal/dto"
	"recipe-pack-payments/internal/model"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every handler error as {"error": message}.
// Invalid client input maps to 400, everything else to 500.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			status = he.Code
			message = fmt.Sprint(he.Message)
		case errors.Is(err, model.ErrInvalidRequest):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, model.ErrPaymentProvider):
			message = "payment provider error"
		case errors.Is(err, model.ErrCorruptStore):
			message = "purchase store unavailable"
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.String("error", err.Error()))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, &dto.ErrorResponse{Error: message})
		}
		if err != nil {
			log.Error("write error response", slog.String("error", err.Error()))
		}
	}
}
