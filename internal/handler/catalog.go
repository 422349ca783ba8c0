package handler

import (
	"net/http"
	"strconv"

	"outfit-agent-demo/internal/client"
	"outfit-agent-demo/internal/dto"

	"github.com/labstack/echo/v4"
)

const defaultSearchLimit = 8

type CatalogHandler struct {
	catalogClient client.CatalogClient
}

func NewCatalogHandler(catalogClient client.CatalogClient) *CatalogHandler {
	return &CatalogHandler{
		catalogClient: catalogClient,
	}
}

func (h *CatalogHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query parameter q")
	}

	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	products, err := h.catalogClient.Search(c.Request().Context(), query, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SearchResponse{Products: products})
}
