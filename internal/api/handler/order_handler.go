package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

type orderLineRequest struct {
	Code        string `json:"code"        validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Quantity    int    `json:"quantity"    validate:"required,gte=1"`
}

type bulkOrderRequest struct {
	Orders []orderLineRequest `json:"orders" validate:"required,min=1,dive"`
}

// OrderHandler serves the bulk order intake endpoint.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// BulkCreate persists a list of order lines all-or-nothing.
//
// @Summary      Bulk order intake
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      bulkOrderRequest  true  "Order lines"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /orders/bulk [post]
func (h *OrderHandler) BulkCreate(c echo.Context) error {
	var req bulkOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	inputs := make([]domain.OrderInput, 0, len(req.Orders))
	for _, o := range req.Orders {
		inputs = append(inputs, domain.OrderInput{Code: o.Code, Description: o.Description, Quantity: o.Quantity})
	}
	if err := h.orders.BulkCreate(c.Request().Context(), inputs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "orders saved"})
}
