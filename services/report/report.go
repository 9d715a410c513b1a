package report

import "sort"

// DateCount is one bucket of a per-date aggregation over bookings.
type DateCount struct {
	Date  string `bson:"_id" json:"date"`
	Count int64  `bson:"count" json:"count"`
}

// DatePoint is one entry of the merged statistics series.
type DatePoint struct {
	Date      string `json:"date"`
	Booked    int64  `json:"booked"`
	Delivered int64  `json:"delivered"`
}

// ReviewAggregate holds the review rollup for one delivery-man.
type ReviewAggregate struct {
	DeliveryMenId string  `bson:"_id" json:"deliveryMenId"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	ReviewCount   int64   `bson:"reviewCount" json:"reviewCount"`
}

// DeliveryManRank is one row of the top-delivery-men ranking.
type DeliveryManRank struct {
	ID               string  `json:"_id"`
	Name             string  `json:"name"`
	Image            string  `json:"image,omitempty"`
	DeliveredParcels int64   `json:"deliveredParcels"`
	AverageRating    float64 `json:"averageRating"`
	ReviewCount      int64   `json:"reviewCount"`
}

// Statistics is the GET /statistics payload.
type Statistics struct {
	TotalUsers     int64       `json:"totalUsers"`
	TotalBookings  int64       `json:"totalBookings"`
	TotalDelivered int64       `json:"totalDelivered"`
	Series         []DatePoint `json:"series"`
	BookingsByDate []DateCount `json:"bookingsByDate"`
}

// MergeSeries folds the delivered-per-date buckets into the booked-per-date
// buckets and returns one date-ascending series. A date present only in the
// booked buckets gets delivered=0. The reverse cannot occur: a delivery is
// always preceded by a booking on the same bookingDate, so every delivered
// date is a booked date.
func MergeSeries(booked, delivered []DateCount) []DatePoint {
	deliveredByDate := make(map[string]int64, len(delivered))
	for _, d := range delivered {
		deliveredByDate[d.Date] = d.Count
	}

	series := make([]DatePoint, 0, len(booked))
	for _, b := range booked {
		series = append(series, DatePoint{
			Date:      b.Date,
			Booked:    b.Count,
			Delivered: deliveredByDate[b.Date],
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// RankDeliveryMen orders delivery-men by delivered-parcel count descending,
// breaking ties by average rating descending, and truncates to the top
// three. Delivered count strictly dominates rating: more deliveries always
// outranks fewer, whatever the ratings.
func RankDeliveryMen(men []DeliveryManRank) []DeliveryManRank {
	ranked := make([]DeliveryManRank, len(men))
	copy(ranked, men)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DeliveredParcels != ranked[j].DeliveredParcels {
			return ranked[i].DeliveredParcels > ranked[j].DeliveredParcels
		}
		return ranked[i].AverageRating > ranked[j].AverageRating
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}
