package handler

import (
	"fmt"
	"io"
	"net/http"
	"recipe-pack-payments/internal/dto"
	"recipe-pack-payments/internal/model"
	"recipe-pack-payments/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid req body", model.ErrInvalidRequest)
	}

	resp, err := h.paymentService.CreatePayment(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Webhook always acknowledges with 200 unless processing failed, in which
// case the provider retries on the generic 500.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process notification").WithInternal(err)
	}

	if err := h.paymentService.HandleNotification(ctx, body, c.QueryParams()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process notification").WithInternal(err)
	}

	return c.NoContent(http.StatusOK)
}

// Landing returns the handler for one of the checkout back URLs.
func (h *PaymentHandler) Landing(status string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":             status,
			"payment_id":         c.QueryParam("payment_id"),
			"external_reference": c.QueryParam("external_reference"),
		})
	}
}
