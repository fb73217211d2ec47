package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	streamsCollection = "streams"
	usersCollection   = "users"
)

// NewMongoDatabase connects to MongoDB, verifies the connection and
// ensures the collection indexes exist.
func NewMongoDatabase(uri, database string, timeout time.Duration, logger *zap.SugaredLogger) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	if logger != nil {
		logger.Infow("connected to MongoDB",
			"database", database,
		)
	}

	return db, nil
}

// ensureIndexes creates the unique index on users.email. The store, not
// the application, enforces email uniqueness.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CloseMongoDatabase disconnects the underlying client.
func CloseMongoDatabase(db *mongo.Database, timeout time.Duration) error {
	if db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
