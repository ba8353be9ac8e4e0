package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const (
	sessionsCollection = "sessions"
	apiKeysCollection  = "apikeys"
)

// SessionRepository tracks issued login sessions.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	ID        string `bson:"id"`
	Username  string `bson:"username"`
	CreatedAt int64  `bson:"created"`
}

// Create inserts a session row. Session ids are server-generated, so a
// duplicate key is a broken generator, not a client conflict; it surfaces as
// an internal error like any other insert failure.
func (r *SessionRepository) Create(ctx context.Context, session domain.Session) error {
	doc := mongoSession{ID: session.ID, Username: session.Username, CreatedAt: session.CreatedAt.Unix()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context, limit int64) ([]domain.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var sessions []domain.Session
	for cur.Next(ctx) {
		var ms mongoSession
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, domain.Session{
			ID:        ms.ID,
			Username:  ms.Username,
			CreatedAt: unixToTime(ms.CreatedAt),
		})
	}
	return sessions, cur.Err()
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// APIKeyRepository tracks long-lived API keys.
type APIKeyRepository struct {
	coll *mongo.Collection
}

func NewAPIKeyRepository(db *mongo.Database) *APIKeyRepository {
	return &APIKeyRepository{coll: db.Collection(apiKeysCollection)}
}

type mongoAPIKey struct {
	Key       string `bson:"key"`
	Name      string `bson:"name"`
	CreatedAt int64  `bson:"created"`
}

// Insert stores a freshly generated key. Keys come from crypto/rand, so a
// duplicate key is a broken generator, not a client conflict; it surfaces as
// an internal error like any other insert failure.
func (r *APIKeyRepository) Insert(ctx context.Context, key domain.APIKey) error {
	doc := mongoAPIKey{Key: key.Key, Name: key.Name, CreatedAt: key.CreatedAt.Unix()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

func (r *APIKeyRepository) List(ctx context.Context, limit int64) ([]domain.APIKey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer cur.Close(ctx)

	var keys []domain.APIKey
	for cur.Next(ctx) {
		var mk mongoAPIKey
		if err := cur.Decode(&mk); err != nil {
			return nil, fmt.Errorf("decode api key: %w", err)
		}
		keys = append(keys, domain.APIKey{
			Key:       mk.Key,
			Name:      mk.Name,
			CreatedAt: unixToTime(mk.CreatedAt),
		})
	}
	return keys, cur.Err()
}

func (r *APIKeyRepository) Delete(ctx context.Context, key string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
