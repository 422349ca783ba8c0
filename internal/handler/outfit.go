package handler

import (
	"io"
	"net/http"

	"outfit-agent-demo/internal/dto"
	"outfit-agent-demo/internal/imaging"
	"outfit-agent-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type OutfitHandler struct {
	outfitService   service.OutfitService
	wardrobeService service.WardrobeService
}

func NewOutfitHandler(outfitService service.OutfitService, wardrobeService service.WardrobeService) *OutfitHandler {
	return &OutfitHandler{
		outfitService:   outfitService,
		wardrobeService: wardrobeService,
	}
}

// Render accepts a multipart portrait upload and composites the currently
// equipped outfit onto it.
func (h *OutfitHandler) Render(c echo.Context) error {
	fileHeader, err := c.FormFile("portrait")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing portrait file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable portrait file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imaging.MaxPortraitBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable portrait file")
	}
	mime := fileHeader.Header.Get("Content-Type")
	if err := imaging.ValidatePortrait(data, mime); err != nil {
		return writeError(c, err)
	}

	items := h.wardrobeService.EquippedItems()
	assets := make([]service.SlotAsset, 0, len(items))
	for _, item := range items {
		assets = append(assets, service.SlotAsset{
			Slot:  item.Slot,
			Image: dto.SlotImage{URL: item.Product.ImageURL},
		})
	}

	result, err := h.outfitService.Render(c.Request().Context(), data, mime, assets)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RenderResponse{
		Portrait: imaging.EncodeDataURL(result.Mime, result.Data),
		Passes:   result.Passes,
	})
}
