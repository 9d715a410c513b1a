package booking

import "errors"

// CreateRequest is the POST /bookings payload. Status and bookingDate are
// stamped server-side, never taken from the client.
type CreateRequest struct {
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	PhoneNumber           string  `json:"phoneNumber"`
	ParcelType            string  `json:"parcelType"`
	ParcelWeight          float64 `json:"parcelWeight"`
	Price                 float64 `json:"price"`
	ReceiverName          string  `json:"receiverName"`
	ReceiverPhoneNumber   string  `json:"receiverPhoneNumber"`
	DeliveryAddress       string  `json:"deliveryAddress"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	RequestedDeliveryDate string  `json:"requestedDeliveryDate"`
}

// Validate checks required fields are present.
func (r *CreateRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.PhoneNumber == "" {
		return errors.New("phoneNumber is required")
	}
	if r.ParcelType == "" {
		return errors.New("parcelType is required")
	}
	if r.DeliveryAddress == "" {
		return errors.New("deliveryAddress is required")
	}
	if r.RequestedDeliveryDate == "" {
		return errors.New("requestedDeliveryDate is required")
	}
	return nil
}

// UpdateRequest is the PATCH /bookings/update/:id payload. Zero values are
// left untouched.
type UpdateRequest struct {
	PhoneNumber           string  `json:"phoneNumber,omitempty"`
	ParcelType            string  `json:"parcelType,omitempty"`
	ParcelWeight          float64 `json:"parcelWeight,omitempty"`
	Price                 float64 `json:"price,omitempty"`
	ReceiverName          string  `json:"receiverName,omitempty"`
	ReceiverPhoneNumber   string  `json:"receiverPhoneNumber,omitempty"`
	DeliveryAddress       string  `json:"deliveryAddress,omitempty"`
	Latitude              float64 `json:"latitude,omitempty"`
	Longitude             float64 `json:"longitude,omitempty"`
	RequestedDeliveryDate string  `json:"requestedDeliveryDate,omitempty"`
}

// ManageRequest is the PATCH /bookings/manage/:id payload: an admin assigns
// a delivery-man and an approximate delivery date, which moves the booking
// to "on the way". The date may be omitted; the handler fills in a default.
type ManageRequest struct {
	DeliveryMenId           string `json:"deliveryMenId"`
	ApproximateDeliveryDate string `json:"approximateDeliveryDate"`
}

// Validate checks required fields are present.
func (r *ManageRequest) Validate() error {
	if r.DeliveryMenId == "" {
		return errors.New("deliveryMenId is required")
	}
	return nil
}
