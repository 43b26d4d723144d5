package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

type PhotoRepo struct {
	coll *mongo.Collection
}

func NewPhotoRepo(db *mongo.Database) *PhotoRepo {
	return &PhotoRepo{coll: db.Collection("photos")}
}

func (r *PhotoRepo) Insert(ctx context.Context, photo domain.Photo) error {
	const op = "PhotoRepo.Insert"
	if _, err := r.coll.InsertOne(ctx, photo); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountGuest returns the number of guest photos one uploader has already
// contributed to an event, the figure the quota gate compares against.
func (r *PhotoRepo) CountGuest(ctx context.Context, eventID, uploaderIP string) (int64, error) {
	const op = "PhotoRepo.CountGuest"
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"eventId":    eventID,
		"uploadType": domain.UploadGuest,
		"uploaderIp": uploaderIP,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *PhotoRepo) FindPreloaded(ctx context.Context, eventID string) ([]domain.Photo, error) {
	const op = "PhotoRepo.FindPreloaded"
	photos, err := r.find(ctx, bson.M{
		"eventId":    eventID,
		"uploadType": domain.UploadPreloaded,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return photos, nil
}

func (r *PhotoRepo) FindApprovedGuest(ctx context.Context, eventID string) ([]domain.Photo, error) {
	const op = "PhotoRepo.FindApprovedGuest"
	photos, err := r.find(ctx, bson.M{
		"eventId":    eventID,
		"uploadType": domain.UploadGuest,
		"approved":   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return photos, nil
}

func (r *PhotoRepo) find(ctx context.Context, filter bson.M) ([]domain.Photo, error) {
	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	photos := make([]domain.Photo, 0)
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}
