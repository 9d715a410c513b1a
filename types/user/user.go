package user

import "errors"

// UpsertRequest is the POST /users payload. Registration is idempotent by
// email: an existing email short-circuits with a nil insertedId.
type UpsertRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Validate checks required fields are present.
func (r *UpsertRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// RoleRequest is the PATCH /users/:id/role payload.
type RoleRequest struct {
	Role string `json:"role"`
}
