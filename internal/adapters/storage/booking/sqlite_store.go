package booking

import (
	"context"
	"fmt"

	"hotelchain/internal/adapters/storage"
	domain "hotelchain/internal/domain/booking"
)

// SQLStore implements Store over database/sql.
// Dates are stored as YYYY-MM-DD text, so string comparison orders them correctly.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new booking store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Create inserts a new Booking and returns its ID.
// Overlap checks are the caller's responsibility.
// PRE: b has been validated
// POST: Row inserted
func (s *SQLStore) Create(ctx context.Context, b domain.Booking) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO bookings (room_id, status, check_in, check_out) VALUES (?, ?, ?, ?) RETURNING id",
		b.RoomID, b.Status, b.CheckInDate(), b.CheckOutDate(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return id, nil
}

// CountConfirmedOverlapping counts confirmed bookings of a room that share a date with dates.
// Boundaries are inclusive, matching domain.DateRange.Overlaps.
// PRE: roomID > 0, dates is valid
// POST: Returns the number of conflicting bookings
func (s *SQLStore) CountConfirmedOverlapping(ctx context.Context, roomID int64, dates domain.DateRange) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status = ? AND check_in <= ? AND check_out >= ?",
		roomID, domain.StatusConfirmed, dates.CheckOutDate(), dates.CheckInDate(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overlapping bookings: %w", err)
	}
	return count, nil
}
