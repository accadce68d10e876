package booking

import (
	"context"

	domain "hotelchain/internal/domain/booking"
)

// Store persists Booking state.
type Store interface {
	Create(ctx context.Context, b domain.Booking) (int64, error)
	CountConfirmedOverlapping(ctx context.Context, roomID int64, dates domain.DateRange) (int, error)
}
