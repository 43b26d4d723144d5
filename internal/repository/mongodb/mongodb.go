package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Yeabkal66/BOTH-BACKEND/configs"
)

func Connect(ctx context.Context, cfg *configs.Config) (*mongo.Database, error) {
	const op = "mongodb.Connect"

	opts := options.Client().
		ApplyURI(cfg.DB.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: connect failed: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s: ping failed: %w", op, err)
	}
	return client.Database(cfg.DB.Database), nil
}
