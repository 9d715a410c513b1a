package logstore

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	logmodel "github.com/notHeisenberg/Parcel-Ease-Server/models/log"
)

// Store persists request logs into the logs collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(constants.CollectionLogs)}
}

func (s *Store) Insert(ctx context.Context, entry logmodel.Log) error {
	_, err := s.c.InsertOne(ctx, entry)
	return err
}
