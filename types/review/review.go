package review

import "errors"

// CreateRequest is the POST /reviews payload. CreatedAt is server-assigned.
type CreateRequest struct {
	UserName      string  `json:"userName"`
	Image         string  `json:"image,omitempty"`
	Rating        float64 `json:"rating"`
	Feedback      string  `json:"feedback"`
	DeliveryMenId string  `json:"deliveryMenId"`
	ParcelId      string  `json:"parcelId"`
}

// Validate checks required fields are present.
func (r *CreateRequest) Validate() error {
	if r.ParcelId == "" {
		return errors.New("parcelId is required")
	}
	if r.DeliveryMenId == "" {
		return errors.New("deliveryMenId is required")
	}
	return nil
}
