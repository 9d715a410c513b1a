package report

import (
	"context"

	"github.com/notHeisenberg/Parcel-Ease-Server/models/user"
)

// UserSource is the slice of the user store the engine needs.
type UserSource interface {
	Count(ctx context.Context) (int64, error)
	DeliveryMen(ctx context.Context) ([]user.User, error)
}

// BookingSource is the slice of the booking store the engine needs.
type BookingSource interface {
	Count(ctx context.Context) (int64, error)
	CountDelivered(ctx context.Context) (int64, error)
	CountPerDate(ctx context.Context) ([]DateCount, error)
	DeliveredPerDate(ctx context.Context) ([]DateCount, error)
}

// ReviewSource is the slice of the review store the engine needs.
type ReviewSource interface {
	AggregateByDeliveryMan(ctx context.Context) ([]ReviewAggregate, error)
}

// Engine derives aggregate statistics and the top-delivery-men ranking by
// combining per-collection rollups in memory. All operations are read-only
// and idempotent; the only failure mode is the store being unreachable.
type Engine struct {
	users    UserSource
	bookings BookingSource
	reviews  ReviewSource
}

func NewEngine(users UserSource, bookings BookingSource, reviews ReviewSource) *Engine {
	return &Engine{users: users, bookings: bookings, reviews: reviews}
}

// Statistics computes the full-history aggregate statistics: totals plus the
// merged bookings/deliveries per-date series.
func (e *Engine) Statistics(ctx context.Context) (*Statistics, error) {
	totalUsers, err := e.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalBookings, err := e.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalDelivered, err := e.bookings.CountDelivered(ctx)
	if err != nil {
		return nil, err
	}

	booked, err := e.bookings.CountPerDate(ctx)
	if err != nil {
		return nil, err
	}

	delivered, err := e.bookings.DeliveredPerDate(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		TotalUsers:     totalUsers,
		TotalBookings:  totalBookings,
		TotalDelivered: totalDelivered,
		Series:         MergeSeries(booked, delivered),
		BookingsByDate: booked,
	}, nil
}

// TopDeliveryMen annotates every delivery-man with their mean review rating
// (0 when unreviewed) and returns the top three by delivered count, rating
// breaking ties.
func (e *Engine) TopDeliveryMen(ctx context.Context) ([]DeliveryManRank, error) {
	men, err := e.users.DeliveryMen(ctx)
	if err != nil {
		return nil, err
	}

	aggregates, err := e.reviews.AggregateByDeliveryMan(ctx)
	if err != nil {
		return nil, err
	}

	byDeliveryMan := make(map[string]ReviewAggregate, len(aggregates))
	for _, a := range aggregates {
		byDeliveryMan[a.DeliveryMenId] = a
	}

	ranks := make([]DeliveryManRank, 0, len(men))
	for _, m := range men {
		agg := byDeliveryMan[m.ID.Hex()]
		ranks = append(ranks, DeliveryManRank{
			ID:               m.ID.Hex(),
			Name:             m.Name,
			Image:            m.Image,
			DeliveredParcels: m.DeliveredParcels,
			AverageRating:    agg.AverageRating,
			ReviewCount:      agg.ReviewCount,
		})
	}

	return RankDeliveryMen(ranks), nil
}
