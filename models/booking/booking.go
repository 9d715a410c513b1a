package booking

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a parcel-delivery request. Status moves
// pending -> on the way -> delivered, or to cancelled; delivered and
// cancelled are terminal. DeliveryMenId is the hex user id of the assigned
// delivery-man and is only set when the status enters "on the way" or later.
type Booking struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                    string             `bson:"name" json:"name"`
	Email                   string             `bson:"email" json:"email"`
	PhoneNumber             string             `bson:"phoneNumber" json:"phoneNumber"`
	ParcelType              string             `bson:"parcelType" json:"parcelType"`
	ParcelWeight            float64            `bson:"parcelWeight" json:"parcelWeight"`
	Price                   float64            `bson:"price" json:"price"`
	ReceiverName            string             `bson:"receiverName" json:"receiverName"`
	ReceiverPhoneNumber     string             `bson:"receiverPhoneNumber" json:"receiverPhoneNumber"`
	DeliveryAddress         string             `bson:"deliveryAddress" json:"deliveryAddress"`
	Latitude                float64            `bson:"latitude" json:"latitude"`
	Longitude               float64            `bson:"longitude" json:"longitude"`
	RequestedDeliveryDate   string             `bson:"requestedDeliveryDate" json:"requestedDeliveryDate"`
	ApproximateDeliveryDate string             `bson:"approximateDeliveryDate,omitempty" json:"approximateDeliveryDate,omitempty"`
	BookingDate             string             `bson:"bookingDate" json:"bookingDate"`
	Status                  string             `bson:"status" json:"status"`
	DeliveryMenId           string             `bson:"deliveryMenId,omitempty" json:"deliveryMenId,omitempty"`
}
