package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository persists the role → permissions mapping.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	Role        string   `bson:"role"`
	Permissions []string `bson:"permissions"`
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "role", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	for cur.Next(ctx) {
		var mr mongoRole
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, domain.Role{Name: mr.Role, Permissions: mr.Permissions})
	}
	return roles, cur.Err()
}

func (r *RoleRepository) Upsert(ctx context.Context, role domain.Role) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"role": role.Name},
		mongoRole{Role: role.Name, Permissions: role.Permissions},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert role %s: %w", role.Name, err)
	}
	return nil
}

// CreateIfMissing inserts the role only when absent, leaving existing
// permission edits untouched. Used by bootstrap.
func (r *RoleRepository) CreateIfMissing(ctx context.Context, role domain.Role) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"role": role.Name},
		bson.M{"$setOnInsert": bson.M{"role": role.Name, "permissions": role.Permissions}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed role %s: %w", role.Name, err)
	}
	return nil
}
