package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a one-time rating tied to exactly one booking (ParcelId) and one
// delivery-man (DeliveryMenId). At most one review per booking; a unique
// index on parcelId backs the pre-insert existence check. Immutable once
// inserted.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserName      string             `bson:"userName" json:"userName"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Rating        float64            `bson:"rating" json:"rating"`
	Feedback      string             `bson:"feedback" json:"feedback"`
	DeliveryMenId string             `bson:"deliveryMenId" json:"deliveryMenId"`
	ParcelId      string             `bson:"parcelId" json:"parcelId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
