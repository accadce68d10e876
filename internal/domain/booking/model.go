package booking

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for check-in and check-out.
const DateLayout = "2006-01-02"

// Status constants
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatuses contains all valid booking statuses.
var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled}

// Domain errors
var (
	ErrInvalidRoom   = errors.New("room id must be positive")
	ErrEmptyCheckIn  = errors.New("check-in date is required")
	ErrEmptyCheckOut = errors.New("check-out date is required")
	ErrInvalidDate   = errors.New("dates must be formatted YYYY-MM-DD")
	ErrInvalidDates  = errors.New("check-out date must be on or after check-in date")
	ErrInvalidStatus = errors.New("status must be one of: pending, confirmed, cancelled")
)

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Booking reserves a room for a date range.
type Booking struct {
	ID     int64
	RoomID int64
	Status string
	DateRange
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if b.RoomID <= 0 {
		return ErrInvalidRoom
	}
	if !isValidStatus(b.Status) {
		return ErrInvalidStatus
	}
	return b.DateRange.Validate()
}

// IsConfirmed reports whether the booking blocks its room.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// ParseDateRange parses two YYYY-MM-DD strings into a validated DateRange.
// PRE: none
// POST: Returns a range with CheckIn <= CheckOut, or an error
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	checkIn = strings.TrimSpace(checkIn)
	checkOut = strings.TrimSpace(checkOut)
	if checkIn == "" {
		return DateRange{}, ErrEmptyCheckIn
	}
	if checkOut == "" {
		return DateRange{}, ErrEmptyCheckOut
	}
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, ErrInvalidDate
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, ErrInvalidDate
	}
	r := DateRange{CheckIn: in, CheckOut: out}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate checks that both dates are set and ordered.
func (r DateRange) Validate() error {
	if r.CheckIn.IsZero() {
		return ErrEmptyCheckIn
	}
	if r.CheckOut.IsZero() {
		return ErrEmptyCheckOut
	}
	if r.CheckOut.Before(r.CheckIn) {
		return ErrInvalidDates
	}
	return nil
}

// Overlaps reports whether two ranges share at least one calendar date.
// Boundaries are inclusive: a stay ending on the day another begins overlaps it.
// INVARIANT: DateRange fields are not mutated
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.CheckIn.After(other.CheckOut) && !r.CheckOut.Before(other.CheckIn)
}

// CheckInDate returns the check-in date formatted with DateLayout.
func (r DateRange) CheckInDate() string {
	return r.CheckIn.Format(DateLayout)
}

// CheckOutDate returns the check-out date formatted with DateLayout.
func (r DateRange) CheckOutDate() string {
	return r.CheckOut.Format(DateLayout)
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
