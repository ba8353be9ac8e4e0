package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// OrderService persists bulk order intakes.
type OrderService struct {
	orders ports.OrderRepository
}

func NewOrderService(orders ports.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// BulkCreate validates every line, then inserts them all-or-nothing.
func (s *OrderService) BulkCreate(ctx context.Context, inputs []domain.OrderInput) error {
	if len(inputs) == 0 {
		return domain.ErrValidation
	}

	now := time.Now().UTC()
	orders := make([]domain.Order, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Code) == "" {
			return fmt.Errorf("%w: line %d: item code required", domain.ErrValidation, i)
		}
		if in.Quantity < 1 {
			return fmt.Errorf("%w: line %d: quantity must be at least 1", domain.ErrValidation, i)
		}
		orders = append(orders, domain.Order{
			ItemCode:    in.Code,
			Description: in.Description,
			Quantity:    in.Quantity,
			CreatedAt:   now,
		})
	}

	return s.orders.InsertBulk(ctx, orders)
}
