package handler

import (
	"net/http"
	"recipe-pack-payments/internal/dto"
	"recipe-pack-payments/internal/service"

	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()

	paid, err := h.purchaseService.CheckPurchased(ctx, c.Param("userPackKey"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckResponse{
		Paid: paid,
	})
}

func (h *PurchaseHandler) MyPacks(c echo.Context) error {
	ctx := c.Request().Context()

	packs, err := h.purchaseService.ListPurchasedPacks(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.PacksResponse{
		Packs: packs,
	})
}
