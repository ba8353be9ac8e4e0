package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// BackupRepository dumps and restores every administrative collection.
type BackupRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewBackupRepository(db *mongo.Database) *BackupRepository {
	return &BackupRepository{client: db.Client(), db: db}
}

// Dump reads every administrative collection into one Backup payload.
// Password hashes are included so a restore reproduces working credentials.
func (r *BackupRepository) Dump(ctx context.Context) (*domain.Backup, error) {
	b := &domain.Backup{}

	users, err := decodeAll[mongoUser](ctx, r.db.Collection(usersCollection))
	if err != nil {
		return nil, err
	}
	for _, mu := range users {
		b.Users = append(b.Users, mu.toDomain())
	}

	roles, err := decodeAll[mongoRole](ctx, r.db.Collection(rolesCollection))
	if err != nil {
		return nil, err
	}
	for _, mr := range roles {
		b.Roles = append(b.Roles, domain.Role{Name: mr.Role, Permissions: mr.Permissions})
	}

	sessions, err := decodeAll[mongoSession](ctx, r.db.Collection(sessionsCollection))
	if err != nil {
		return nil, err
	}
	for _, ms := range sessions {
		b.Sessions = append(b.Sessions, domain.Session{ID: ms.ID, Username: ms.Username, CreatedAt: unixToTime(ms.CreatedAt)})
	}

	keys, err := decodeAll[mongoAPIKey](ctx, r.db.Collection(apiKeysCollection))
	if err != nil {
		return nil, err
	}
	for _, mk := range keys {
		b.APIKeys = append(b.APIKeys, domain.APIKey{Key: mk.Key, Name: mk.Name, CreatedAt: unixToTime(mk.CreatedAt)})
	}

	anns, err := decodeAll[mongoAnnouncement](ctx, r.db.Collection(announcementsCollection))
	if err != nil {
		return nil, err
	}
	for _, ma := range anns {
		b.Announcements = append(b.Announcements, domain.Announcement{TS: ma.TS, Text: ma.Text})
	}

	logs, err := decodeAll[mongoLog](ctx, r.db.Collection(logsCollection))
	if err != nil {
		return nil, err
	}
	for _, ml := range logs {
		b.Logs = append(b.Logs, domain.LogEntry{TS: ml.TS, Message: ml.Message})
	}

	return b, nil
}

// Restore clears and reinserts every administrative collection inside one
// transaction. Any failure rolls the whole restore back.
func (r *BackupRepository) Restore(ctx context.Context, b *domain.Backup) error {
	return runTxn(ctx, r.client, func(sc mongo.SessionContext) error {
		collections := []string{
			usersCollection, rolesCollection, sessionsCollection,
			apiKeysCollection, announcementsCollection, logsCollection,
		}
		for _, name := range collections {
			if _, err := r.db.Collection(name).DeleteMany(sc, bson.M{}); err != nil {
				return fmt.Errorf("clear %s: %w", name, err)
			}
		}

		if err := insertAll(sc, r.db.Collection(usersCollection), mapSlice(b.Users, func(u domain.User) interface{} {
			return toMongoUser(&u)
		})); err != nil {
			return err
		}
		if err := insertAll(sc, r.db.Collection(rolesCollection), mapSlice(b.Roles, func(role domain.Role) interface{} {
			return mongoRole{Role: role.Name, Permissions: role.Permissions}
		})); err != nil {
			return err
		}
		if err := insertAll(sc, r.db.Collection(sessionsCollection), mapSlice(b.Sessions, func(s domain.Session) interface{} {
			return mongoSession{ID: s.ID, Username: s.Username, CreatedAt: s.CreatedAt.Unix()}
		})); err != nil {
			return err
		}
		if err := insertAll(sc, r.db.Collection(apiKeysCollection), mapSlice(b.APIKeys, func(k domain.APIKey) interface{} {
			return mongoAPIKey{Key: k.Key, Name: k.Name, CreatedAt: k.CreatedAt.Unix()}
		})); err != nil {
			return err
		}
		if err := insertAll(sc, r.db.Collection(announcementsCollection), mapSlice(b.Announcements, func(a domain.Announcement) interface{} {
			return mongoAnnouncement{TS: a.TS, Text: a.Text}
		})); err != nil {
			return err
		}
		return insertAll(sc, r.db.Collection(logsCollection), mapSlice(b.Logs, func(l domain.LogEntry) interface{} {
			return mongoLog{TS: l.TS, Message: l.Message}
		}))
	})
}

func decodeAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("dump %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func insertAll(sc mongo.SessionContext, coll *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(sc, docs); err != nil {
		return fmt.Errorf("restore %s: %w", coll.Name(), err)
	}
	return nil
}

func mapSlice[T any](in []T, fn func(T) interface{}) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
