package reviewstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/models/review"
	"github.com/notHeisenberg/Parcel-Ease-Server/services/report"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(constants.CollectionReviews)}
}

// ExistsForParcel reports whether a review already references the booking.
func (s *Store) ExistsForParcel(ctx context.Context, parcelId string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"parcelId": parcelId},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert stores a new review and returns the generated id. The unique index
// on parcelId turns a lost race between the existence check and the insert
// into a duplicate-key error instead of a second review.
func (s *Store) Insert(ctx context.Context, r review.Review) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// IsDuplicate reports whether the insert failed on the parcelId unique index.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// ListByDeliveryMan returns the reviews referencing a delivery-man, newest
// first.
func (s *Store) ListByDeliveryMan(ctx context.Context, deliveryMenId string) ([]review.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"deliveryMenId": deliveryMenId}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []review.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AggregateByDeliveryMan rolls every review up into a per-delivery-man
// average rating and count.
func (s *Store) AggregateByDeliveryMan(ctx context.Context) ([]report.ReviewAggregate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           "$deliveryMenId",
			"averageRating": bson.M{"$avg": "$rating"},
			"reviewCount":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var aggregates []report.ReviewAggregate
	if err := cur.All(ctx, &aggregates); err != nil {
		return nil, err
	}
	return aggregates, nil
}
