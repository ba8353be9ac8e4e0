package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

const announcementsCollection = "announcements"

// AnnouncementRepository persists admin broadcasts, keyed by timestamp.
type AnnouncementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *AnnouncementRepository {
	return &AnnouncementRepository{coll: db.Collection(announcementsCollection)}
}

type mongoAnnouncement struct {
	TS   int64  `bson:"ts"`
	Text string `bson:"text"`
}

func (r *AnnouncementRepository) List(ctx context.Context, limit int64) ([]domain.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ts", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer cur.Close(ctx)

	var anns []domain.Announcement
	for cur.Next(ctx) {
		var ma mongoAnnouncement
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode announcement: %w", err)
		}
		anns = append(anns, domain.Announcement{TS: ma.TS, Text: ma.Text})
	}
	return anns, cur.Err()
}

func (r *AnnouncementRepository) Create(ctx context.Context, a domain.Announcement) error {
	if _, err := r.coll.InsertOne(ctx, mongoAnnouncement{TS: a.TS, Text: a.Text}); err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, ts int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"ts": ts})
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
