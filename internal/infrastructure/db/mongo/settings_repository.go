package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const settingsCollection = "settings"

// SettingsRepository persists per-user UI settings.
type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

type mongoSettings struct {
	Username      string `bson:"username"`
	Theme         string `bson:"theme"`
	Notifications string `bson:"notifications"`
	DefaultPage   string `bson:"default_page"`
	FontSize      string `bson:"font_size"`
	Accessibility string `bson:"accessibility"`
	APIBase       string `bson:"api_base"`
	UpdatedAt     int64  `bson:"updated_at"`
}

func (r *SettingsRepository) Get(ctx context.Context, username string) (domain.Settings, error) {
	var ms mongoSettings
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Settings{}, domain.ErrNotFound
		}
		return domain.Settings{}, fmt.Errorf("find settings: %w", err)
	}
	return domain.Settings{
		Username:      ms.Username,
		Theme:         ms.Theme,
		Notifications: ms.Notifications,
		DefaultPage:   ms.DefaultPage,
		FontSize:      ms.FontSize,
		Accessibility: ms.Accessibility,
		APIBase:       ms.APIBase,
		UpdatedAt:     unixToTime(ms.UpdatedAt),
	}, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s domain.Settings) error {
	doc := mongoSettings{
		Username:      s.Username,
		Theme:         s.Theme,
		Notifications: s.Notifications,
		DefaultPage:   s.DefaultPage,
		FontSize:      s.FontSize,
		Accessibility: s.Accessibility,
		APIBase:       s.APIBase,
		UpdatedAt:     s.UpdatedAt.Unix(),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"username": s.Username}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
