package handler

import (
	"net/http"

	"outfit-agent-demo/internal/apperr"

	"github.com/labstack/echo/v4"
)

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindExternalCall, apperr.KindRenderIncomplete, apperr.KindAgentIncomplete:
		status = http.StatusBadGateway
	}
	return c.JSON(status, map[string]string{
		"error":   kind.String(),
		"message": err.Error(),
	})
}
