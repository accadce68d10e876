package projections

import (
	"context"
	"errors"
	"fmt"

	"hotelchain/internal/domain/booking"
)

// ErrAvailabilityUnavailable is returned when the booking store cannot answer.
var ErrAvailabilityUnavailable = errors.New("availability lookup failed")

// AvailabilityQuery carries input for the availability projection.
// Dates use booking.DateLayout.
type AvailabilityQuery struct {
	RoomID   int64
	CheckIn  string
	CheckOut string
}

// AvailabilityDeps holds dependencies for the availability projection.
type AvailabilityDeps struct {
	BookingStore BookingStore
}

// AvailabilityResult carries the output of the availability projection.
type AvailabilityResult struct {
	RoomID    int64  `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
	Conflicts int    `json:"conflicts"`
}

// QueryRoomAvailability reports whether a room is free for the requested stay.
// PRE: none; dates and room id are validated here
// POST: Available is true iff no confirmed booking overlaps the stay, boundaries inclusive
func QueryRoomAvailability(ctx context.Context, query AvailabilityQuery, deps AvailabilityDeps) (AvailabilityResult, error) {
	if query.RoomID <= 0 {
		return AvailabilityResult{}, booking.ErrInvalidRoom
	}
	dates, err := booking.ParseDateRange(query.CheckIn, query.CheckOut)
	if err != nil {
		return AvailabilityResult{}, err
	}

	conflicts, err := deps.BookingStore.CountConfirmedOverlapping(ctx, query.RoomID, dates)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("%w: room %d: %w", ErrAvailabilityUnavailable, query.RoomID, err)
	}

	return AvailabilityResult{
		RoomID:    query.RoomID,
		CheckIn:   dates.CheckInDate(),
		CheckOut:  dates.CheckOutDate(),
		Available: conflicts == 0,
		Conflicts: conflicts,
	}, nil
}
