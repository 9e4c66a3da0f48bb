package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusai/web"
)

// PageHandler serves the landing page.
type PageHandler struct {
	index []byte
}

// NewPageHandler creates a page handler over the embedded landing page.
func NewPageHandler() *PageHandler {
	return &PageHandler{index: web.Index}
}

// Index serves the landing page.
func (h *PageHandler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.index)
}
