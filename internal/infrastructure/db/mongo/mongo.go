package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on for
// conflict detection. Idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	specs := []struct {
		collection string
		key        string
	}{
		{usersCollection, "username"},
		{rolesCollection, "role"},
		{sessionsCollection, "id"},
		{apiKeysCollection, "key"},
		{settingsCollection, "username"},
	}
	for _, s := range specs {
		_, err := db.Collection(s.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: s.key, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("create index %s.%s: %w", s.collection, s.key, err)
		}
	}
	return nil
}

// runTxn executes fn inside a multi-document transaction, committing on nil
// and aborting otherwise. Abort errors are swallowed by the driver so the
// original failure is what propagates.
func runTxn(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
