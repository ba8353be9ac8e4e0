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

const usersCollection = "users"

// UserRepository is the MongoDB-backed credential store.
type UserRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{client: db.Client(), coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	Active       bool   `bson:"active"`
	CreatedAt    int64  `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt.Unix(),
	}
}

func (mu mongoUser) toDomain() domain.User {
	return domain.User{
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Active:       mu.Active,
		CreatedAt:    unixToTime(mu.CreatedAt),
	}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := mu.toDomain()
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) UpdateRole(ctx context.Context, username, role string) error {
	return r.updateOne(ctx, username, bson.M{"$set": bson.M{"role": role}})
}

func (r *UserRepository) SetActive(ctx context.Context, username string, active bool) error {
	return r.updateOne(ctx, username, bson.M{"$set": bson.M{"active": active}})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return r.updateOne(ctx, username, bson.M{"$set": bson.M{"password_hash": passwordHash}})
}

func (r *UserRepository) updateOne(ctx context.Context, username string, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// ImportAll upserts every row inside one transaction. Imported rows never
// carry password material: new users get an empty hash and must have their
// password set by an admin before they can log in.
func (r *UserRepository) ImportAll(ctx context.Context, rows []domain.UserImport) error {
	now := time.Now().Unix()
	return runTxn(ctx, r.client, func(sc mongo.SessionContext) error {
		for _, row := range rows {
			active := true
			if row.Active != nil {
				active = *row.Active
			}
			_, err := r.coll.UpdateOne(sc,
				bson.M{"username": row.Username},
				bson.M{
					"$set": bson.M{"role": row.Role, "active": active},
					"$setOnInsert": bson.M{
						"username":      row.Username,
						"password_hash": "",
						"created_at":    now,
					},
				},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return fmt.Errorf("import user %s: %w", row.Username, err)
			}
		}
		return nil
	})
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
