package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	userModel "github.com/notHeisenberg/Parcel-Ease-Server/models/user"
	"github.com/notHeisenberg/Parcel-Ease-Server/services/report"
)

func TestMergeSeries(t *testing.T) {
	booked := []report.DateCount{
		{Date: "2024-01-01", Count: 3},
		{Date: "2024-01-02", Count: 1},
	}
	delivered := []report.DateCount{
		{Date: "2024-01-01", Count: 2},
	}

	series := report.MergeSeries(booked, delivered)

	require.Len(t, series, 2)
	assert.Equal(t, report.DatePoint{Date: "2024-01-01", Booked: 3, Delivered: 2}, series[0])
	assert.Equal(t, report.DatePoint{Date: "2024-01-02", Booked: 1, Delivered: 0}, series[1])
}

func TestMergeSeries_SortsAscending(t *testing.T) {
	booked := []report.DateCount{
		{Date: "2024-03-10", Count: 1},
		{Date: "2024-01-05", Count: 2},
		{Date: "2024-02-20", Count: 4},
	}

	series := report.MergeSeries(booked, nil)

	require.Len(t, series, 3)
	assert.Equal(t, "2024-01-05", series[0].Date)
	assert.Equal(t, "2024-02-20", series[1].Date)
	assert.Equal(t, "2024-03-10", series[2].Date)
}

func TestMergeSeries_Empty(t *testing.T) {
	assert.Empty(t, report.MergeSeries(nil, nil))
}

func TestRankDeliveryMen_DeliveredDominatesRating(t *testing.T) {
	men := []report.DeliveryManRank{
		{ID: "a", Name: "A", DeliveredParcels: 5, AverageRating: 3.0},
		{ID: "b", Name: "B", DeliveredParcels: 5, AverageRating: 4.5},
		{ID: "c", Name: "C", DeliveredParcels: 2, AverageRating: 5.0},
		{ID: "d", Name: "D", DeliveredParcels: 5, AverageRating: 1.0},
	}

	top := report.RankDeliveryMen(men)

	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "a", top[1].ID)
	assert.Equal(t, "d", top[2].ID)
}

func TestRankDeliveryMen_FewerThanThree(t *testing.T) {
	men := []report.DeliveryManRank{
		{ID: "a", DeliveredParcels: 1},
		{ID: "b", DeliveredParcels: 7},
	}

	top := report.RankDeliveryMen(men)

	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "a", top[1].ID)
}

func TestRankDeliveryMen_DoesNotMutateInput(t *testing.T) {
	men := []report.DeliveryManRank{
		{ID: "a", DeliveredParcels: 1},
		{ID: "b", DeliveredParcels: 2},
	}

	report.RankDeliveryMen(men)

	assert.Equal(t, "a", men[0].ID)
}

type fakeUserSource struct {
	count int64
	men   []userModel.User
}

func (f *fakeUserSource) Count(ctx context.Context) (int64, error) { return f.count, nil }
func (f *fakeUserSource) DeliveryMen(ctx context.Context) ([]userModel.User, error) {
	return f.men, nil
}

type fakeBookingSource struct {
	total     int64
	delivered int64
	perDate   []report.DateCount
	delPerDay []report.DateCount
}

func (f *fakeBookingSource) Count(ctx context.Context) (int64, error)          { return f.total, nil }
func (f *fakeBookingSource) CountDelivered(ctx context.Context) (int64, error) { return f.delivered, nil }
func (f *fakeBookingSource) CountPerDate(ctx context.Context) ([]report.DateCount, error) {
	return f.perDate, nil
}
func (f *fakeBookingSource) DeliveredPerDate(ctx context.Context) ([]report.DateCount, error) {
	return f.delPerDay, nil
}

type fakeReviewSource struct {
	aggregates []report.ReviewAggregate
}

func (f *fakeReviewSource) AggregateByDeliveryMan(ctx context.Context) ([]report.ReviewAggregate, error) {
	return f.aggregates, nil
}

func TestEngine_Statistics(t *testing.T) {
	engine := report.NewEngine(
		&fakeUserSource{count: 10},
		&fakeBookingSource{
			total:     4,
			delivered: 2,
			perDate: []report.DateCount{
				{Date: "2024-01-01", Count: 3},
				{Date: "2024-01-02", Count: 1},
			},
			delPerDay: []report.DateCount{
				{Date: "2024-01-01", Count: 2},
			},
		},
		&fakeReviewSource{},
	)

	got, err := engine.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), got.TotalUsers)
	assert.Equal(t, int64(4), got.TotalBookings)
	assert.Equal(t, int64(2), got.TotalDelivered)
	require.Len(t, got.Series, 2)
	assert.Equal(t, int64(2), got.Series[0].Delivered)
	assert.Equal(t, int64(0), got.Series[1].Delivered)
	assert.Len(t, got.BookingsByDate, 2)
}

func TestEngine_TopDeliveryMen_UnreviewedDefaultsToZero(t *testing.T) {
	reviewed := primitive.NewObjectID()
	unreviewed := primitive.NewObjectID()

	engine := report.NewEngine(
		&fakeUserSource{men: []userModel.User{
			{ID: unreviewed, Name: "Quiet", DeliveredParcels: 3},
			{ID: reviewed, Name: "Praised", DeliveredParcels: 3},
		}},
		&fakeBookingSource{},
		&fakeReviewSource{aggregates: []report.ReviewAggregate{
			{DeliveryMenId: reviewed.Hex(), AverageRating: 4.2, ReviewCount: 5},
		}},
	)

	top, err := engine.TopDeliveryMen(context.Background())
	require.NoError(t, err)

	require.Len(t, top, 2)
	// Equal delivered counts: the rated delivery-man wins the tie-break.
	assert.Equal(t, "Praised", top[0].Name)
	assert.Equal(t, 4.2, top[0].AverageRating)
	assert.Equal(t, "Quiet", top[1].Name)
	assert.Equal(t, 0.0, top[1].AverageRating)
}
