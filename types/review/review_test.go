package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notHeisenberg/Parcel-Ease-Server/types/review"
)

func TestCreateRequest_Validate(t *testing.T) {
	valid := review.CreateRequest{
		UserName:      "Alice",
		Rating:        4.5,
		Feedback:      "quick handoff",
		DeliveryMenId: "65a1b2c3d4e5f60718293a4b",
		ParcelId:      "65a1b2c3d4e5f60718293a4c",
	}
	assert.NoError(t, valid.Validate())

	missingParcel := valid
	missingParcel.ParcelId = ""
	assert.Error(t, missingParcel.Validate())

	missingDeliveryMan := valid
	missingDeliveryMan.DeliveryMenId = ""
	assert.Error(t, missingDeliveryMan.Validate())
}

// Validation stops at presence; the rating value itself is taken as sent.
func TestCreateRequest_ValidateAcceptsAnyRating(t *testing.T) {
	req := review.CreateRequest{
		UserName:      "Alice",
		Rating:        7,
		DeliveryMenId: "65a1b2c3d4e5f60718293a4b",
		ParcelId:      "65a1b2c3d4e5f60718293a4c",
	}
	assert.NoError(t, req.Validate())

	req.Rating = -1
	assert.NoError(t, req.Validate())
}
