package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const ordersCollection = "orders"

// OrderRepository persists order lines from the bulk intake endpoint.
type OrderRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{client: db.Client(), coll: db.Collection(ordersCollection)}
}

type mongoOrder struct {
	ItemCode    string `bson:"item_code"`
	Description string `bson:"description"`
	Quantity    int    `bson:"quantity"`
	CreatedAt   int64  `bson:"created_at"`
}

// InsertBulk writes every line inside one transaction so a partial failure
// leaves no partial order applied.
func (r *OrderRepository) InsertBulk(ctx context.Context, orders []domain.Order) error {
	docs := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, mongoOrder{
			ItemCode:    o.ItemCode,
			Description: o.Description,
			Quantity:    o.Quantity,
			CreatedAt:   o.CreatedAt.Unix(),
		})
	}

	return runTxn(ctx, r.client, func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert orders: %w", err)
		}
		return nil
	})
}
