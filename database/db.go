package database

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/logger"
)

// InitDB connects to MongoDB and returns the database handle. The handle is
// safe for concurrent use and is passed down explicitly; there is no
// package-level connection state. The environment is expected to be loaded
// already; main does that once at startup.
func InitDB() (*mongo.Client, *mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "parcelEase"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", err)
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("Failed to ping MongoDB", err)
		return nil, nil, err
	}
	logger.Success("Successfully connected to MongoDB")

	db := client.Database(dbName)

	if err := EnsureIndexes(ctx, db); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, nil, err
	}
	logger.Success("All indexes created successfully")

	return client, db, nil
}

// EnsureIndexes creates the indexes the handlers rely on. The unique index
// on reviews.parcelId backs the one-review-per-booking rule even when two
// inserts race past the pre-insert existence check.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}
	if _, err := db.Collection(constants.CollectionUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "deliveryMenId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "bookingDate", Value: 1}}},
	}
	if _, err := db.Collection(constants.CollectionBookings).Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return err
	}

	reviewIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "parcelId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "deliveryMenId", Value: 1}}},
	}
	if _, err := db.Collection(constants.CollectionReviews).Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return err
	}

	return nil
}
