package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const consumablesCollection = "consumables"

// CatalogRepository holds the consumables catalog.
type CatalogRepository struct {
	coll *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{coll: db.Collection(consumablesCollection)}
}

type mongoConsumable struct {
	Code  string  `bson:"code"`
	Name  string  `bson:"name"`
	Unit  string  `bson:"unit"`
	Price float64 `bson:"price"`
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.Consumable, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list consumables: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.Consumable
	for cur.Next(ctx) {
		var mc mongoConsumable
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode consumable: %w", err)
		}
		items = append(items, domain.Consumable{Code: mc.Code, Name: mc.Name, Unit: mc.Unit, Price: mc.Price})
	}
	return items, cur.Err()
}

func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count consumables: %w", err)
	}
	return n, nil
}

func (r *CatalogRepository) InsertMany(ctx context.Context, items []domain.Consumable) error {
	docs := make([]interface{}, 0, len(items))
	for _, it := range items {
		docs = append(docs, mongoConsumable{Code: it.Code, Name: it.Name, Unit: it.Unit, Price: it.Price})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert consumables: %w", err)
	}
	return nil
}
