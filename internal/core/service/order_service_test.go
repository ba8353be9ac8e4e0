package service

import (
	"context"
	"errors"
	"testing"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

type stubOrderRepo struct {
	batches [][]domain.Order
}

func (r *stubOrderRepo) InsertBulk(_ context.Context, orders []domain.Order) error {
	r.batches = append(r.batches, orders)
	return nil
}

func TestOrderService_BulkCreate(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := NewOrderService(orders)

	inputs := []domain.OrderInput{
		{Code: "GLV-N100", Description: "gloves", Quantity: 2},
		{Code: "TAP-Iso19", Quantity: 10},
	}
	if err := svc.BulkCreate(context.Background(), inputs); err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}
	if len(orders.batches) != 1 || len(orders.batches[0]) != 2 {
		t.Fatalf("unexpected batches %+v", orders.batches)
	}
	if orders.batches[0][0].CreatedAt.IsZero() {
		t.Fatalf("orders must be timestamped")
	}
}

func TestOrderService_BulkCreate_Empty(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{})

	if err := svc.BulkCreate(context.Background(), nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderService_BulkCreate_BadLineRejectsAll(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := NewOrderService(orders)

	cases := [][]domain.OrderInput{
		{{Code: "GLV-N100", Quantity: 1}, {Code: "  ", Quantity: 1}},
		{{Code: "GLV-N100", Quantity: 1}, {Code: "TAP-Iso19", Quantity: 0}},
	}
	for _, inputs := range cases {
		if err := svc.BulkCreate(context.Background(), inputs); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("inputs %+v: expected ErrValidation, got %v", inputs, err)
		}
	}
	if len(orders.batches) != 0 {
		t.Fatalf("no batch may be inserted when a line is invalid")
	}
}
