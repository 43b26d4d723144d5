package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

type EventRepo struct {
	coll *mongo.Collection
}

func NewEventRepo(db *mongo.Database) *EventRepo {
	return &EventRepo{coll: db.Collection("events")}
}

// EnsureIndexes creates the unique index on eventId. Generated ids are not
// pre-checked for collision; insertion through this index is what surfaces
// a duplicate as a creation failure.
func (r *EventRepo) EnsureIndexes(ctx context.Context) error {
	const op = "EventRepo.EnsureIndexes"
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *EventRepo) Insert(ctx context.Context, event domain.Event) error {
	const op = "EventRepo.Insert"
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: event id %s already exists: %w", op, event.EventID, domain.ErrStorage)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *EventRepo) FindByID(ctx context.Context, eventID string) (domain.Event, error) {
	const op = "EventRepo.FindByID"
	var event domain.Event
	err := r.coll.FindOne(ctx, bson.M{"eventId": eventID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Event{}, domain.ErrRecordNotFound
		}
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	return event, nil
}

// Disable flips the event's status. Status is the only mutable field of an
// event after creation.
func (r *EventRepo) Disable(ctx context.Context, eventID string) error {
	const op = "EventRepo.Disable"
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"eventId": eventID},
		bson.M{"$set": bson.M{"status": domain.StatusDisabled}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
