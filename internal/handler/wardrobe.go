package handler

import (
	"net/http"

	"outfit-agent-demo/internal/dto"
	"outfit-agent-demo/internal/service"
	"outfit-agent-demo/internal/wardrobe"

	"github.com/labstack/echo/v4"
)

type WardrobeHandler struct {
	wardrobeService service.WardrobeService
}

func NewWardrobeHandler(wardrobeService service.WardrobeService) *WardrobeHandler {
	return &WardrobeHandler{
		wardrobeService: wardrobeService,
	}
}

func (h *WardrobeHandler) SaveProduct(c echo.Context) error {
	var req dto.SaveProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	slots, err := h.wardrobeService.SaveProduct(c.Request().Context(), req.Product)
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.SaveProductResponse{Slots: make([]string, len(slots))}
	for i, s := range slots {
		resp.Slots[i] = string(s)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *WardrobeHandler) Equip(c echo.Context) error {
	var req dto.EquipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	slot, ok := wardrobe.ParseSlot(req.Slot)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown slot "+req.Slot)
	}

	if err := h.wardrobeService.Equip(c.Request().Context(), slot, req.ProductID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WardrobeHandler) Unequip(c echo.Context) error {
	slot, ok := wardrobe.ParseSlot(c.Param("slot"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown slot "+c.Param("slot"))
	}

	h.wardrobeService.Unequip(slot)
	return c.NoContent(http.StatusNoContent)
}

func (h *WardrobeHandler) Reset(c echo.Context) error {
	h.wardrobeService.Reset()
	return c.NoContent(http.StatusNoContent)
}

func (h *WardrobeHandler) GetState(c echo.Context) error {
	state, err := h.wardrobeService.State(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}
