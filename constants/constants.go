package constants

// User roles
const (
	RoleCustomer    = "customer"
	RoleAdmin       = "admin"
	RoleDeliveryMan = "deliveryman"
)

// Booking statuses
const (
	StatusPending   = "pending"
	StatusOnTheWay  = "on the way"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Collection names
const (
	CollectionUsers    = "users"
	CollectionBookings = "bookings"
	CollectionReviews  = "reviews"
	CollectionLogs     = "logs"
)

// ValidRoles is used to reject unknown roles on role-change requests.
var ValidRoles = map[string]bool{
	RoleCustomer:    true,
	RoleAdmin:       true,
	RoleDeliveryMan: true,
}

// ValidStatuses covers every status a booking can be moved to.
var ValidStatuses = map[string]bool{
	StatusPending:   true,
	StatusOnTheWay:  true,
	StatusDelivered: true,
	StatusCancelled: true,
}
