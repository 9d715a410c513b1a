package bookingstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/models/booking"
	"github.com/notHeisenberg/Parcel-Ease-Server/services/report"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(constants.CollectionBookings)}
}

// Insert stores a new booking and returns the generated id.
func (s *Store) Insert(ctx context.Context, b booking.Booking) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// GetByID loads a booking by id. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*booking.Booking, error) {
	var b booking.Booking
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns every booking, newest booking date first.
func (s *Store) List(ctx context.Context) ([]booking.Booking, error) {
	return s.find(ctx, bson.M{})
}

// ListByEmail returns the bookings created by the given sender email.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]booking.Booking, error) {
	return s.find(ctx, bson.M{"email": email})
}

// ListAssigned returns the non-cancelled bookings assigned to a delivery-man.
func (s *Store) ListAssigned(ctx context.Context, deliveryMenId string) ([]booking.Booking, error) {
	return s.find(ctx, bson.M{
		"deliveryMenId": deliveryMenId,
		"status":        bson.M{"$ne": constants.StatusCancelled},
	})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]booking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []booking.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Update applies the given field updates to the booking with the id.
// Returns ErrNotFound when the id matches no record.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of bookings.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountDelivered returns the number of delivered bookings.
func (s *Store) CountDelivered(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": constants.StatusDelivered})
}

// CountPerDate groups all bookings by booking date.
func (s *Store) CountPerDate(ctx context.Context) ([]report.DateCount, error) {
	return s.perDate(ctx, bson.M{})
}

// DeliveredPerDate groups delivered bookings by booking date.
func (s *Store) DeliveredPerDate(ctx context.Context) ([]report.DateCount, error) {
	return s.perDate(ctx, bson.M{"status": constants.StatusDelivered})
}

func (s *Store) perDate(ctx context.Context, match bson.M) ([]report.DateCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$bookingDate",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var buckets []report.DateCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// EmailRollup is the per-customer booking count and spend used to annotate
// the admin user list.
type EmailRollup struct {
	Email      string  `bson:"_id" json:"email"`
	Bookings   int64   `bson:"bookings" json:"bookings"`
	TotalSpent float64 `bson:"totalSpent" json:"totalSpent"`
}

// RollupByEmail groups bookings by sender email, counting them and summing
// the parcel prices.
func (s *Store) RollupByEmail(ctx context.Context) (map[string]EmailRollup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$email",
			"bookings":   bson.M{"$sum": 1},
			"totalSpent": bson.M{"$sum": "$price"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rollups []EmailRollup
	if err := cur.All(ctx, &rollups); err != nil {
		return nil, err
	}

	byEmail := make(map[string]EmailRollup, len(rollups))
	for _, r := range rollups {
		byEmail[r.Email] = r
	}
	return byEmail, nil
}
