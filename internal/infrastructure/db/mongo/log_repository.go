package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const logsCollection = "logs"

// LogRepository is the append-only audit store.
type LogRepository struct {
	coll *mongo.Collection
}

func NewLogRepository(db *mongo.Database) *LogRepository {
	return &LogRepository{coll: db.Collection(logsCollection)}
}

type mongoLog struct {
	TS      int64  `bson:"ts"`
	Message string `bson:"message"`
}

func (r *LogRepository) Append(ctx context.Context, message string) error {
	doc := mongoLog{TS: time.Now().UnixMilli(), Message: message}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

func (r *LogRepository) Recent(ctx context.Context, limit int64) ([]domain.LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ts", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.LogEntry
	for cur.Next(ctx) {
		var ml mongoLog
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode log: %w", err)
		}
		entries = append(entries, domain.LogEntry{TS: ml.TS, Message: ml.Message})
	}
	return entries, cur.Err()
}
