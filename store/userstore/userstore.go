package userstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/notHeisenberg/Parcel-Ease-Server/constants"
	"github.com/notHeisenberg/Parcel-Ease-Server/models/user"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(constants.CollectionUsers)}
}

// GetByEmail loads a user by email. Returns ErrNotFound if absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// RoleByEmail resolves just the role field for the role-gate middleware.
// Returns ErrNotFound if no user record exists for the email.
func (s *Store) RoleByEmail(ctx context.Context, email string) (string, error) {
	var doc struct {
		Role string `bson:"role"`
	}
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Role, nil
}

// Insert creates a new user and returns the generated id.
func (s *Store) Insert(ctx context.Context, u user.User) (primitive.ObjectID, error) {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = constants.RoleCustomer
	}

	res, err := s.c.InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// List returns users, optionally filtered by role.
func (s *Store) List(ctx context.Context, role string) ([]user.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []user.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeliveryMen returns every user with the deliveryman role.
func (s *Store) DeliveryMen(ctx context.Context) ([]user.User, error) {
	return s.List(ctx, constants.RoleDeliveryMan)
}

// Count returns the total number of user records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// UpdateRole sets the role of the user with the given id. Returns
// ErrNotFound when the id matches no record.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"role": role, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDelivered bumps the delivered-parcels counter of the user with
// the given id by one.
func (s *Store) IncrementDelivered(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"deliveredParcels": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
