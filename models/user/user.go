package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Email is the natural key (unique index);
// registration is upsert-by-email. DeliveredParcels is a counter maintained
// by the delivery status-transition endpoint.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Role             string             `bson:"role" json:"role"`
	PhoneNumber      string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	DeliveredParcels int64              `bson:"deliveredParcels" json:"deliveredParcels"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
