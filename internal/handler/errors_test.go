package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"recipe-pack-payments/internal/model"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid request",
			err:        fmt.Errorf("%w: title is required", model.ErrInvalidRequest),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request: title is required"}`,
		},
		{
			name:       "provider failure",
			err:        fmt.Errorf("provider create checkout: %w", model.ErrPaymentProvider),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"payment provider error"}`,
		},
		{
			name:       "corrupt store",
			err:        fmt.Errorf("read purchases: %w", model.ErrCorruptStore),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"purchase store unavailable"}`,
		},
		{
			name:       "unknown",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusNotFound, "Not Found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not Found"}`,
		},
	}

	h := ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}
