package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// CatalogHandler serves the read-only consumables catalog.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns every catalog item.
func (h *CatalogHandler) List(c echo.Context) error {
	items, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Consumable{}
	}
	return c.JSON(http.StatusOK, items)
}
