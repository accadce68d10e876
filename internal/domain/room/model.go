package room

import (
	"errors"
	"math"
)

// Status constants
const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

// ValidStatuses contains all valid room statuses.
var ValidStatuses = []string{StatusAvailable, StatusOccupied, StatusMaintenance}

// Domain errors
var (
	ErrInvalidBranch = errors.New("branch id must be positive")
	ErrInvalidStatus = errors.New("status must be one of: available, occupied, maintenance")
	ErrEmptyNumber   = errors.New("room number cannot be empty")
)

// Room is a bookable unit belonging to a branch.
type Room struct {
	ID       int64
	BranchID int64
	Number   string
	Status   string
}

// Validate checks if the Room has valid data.
// PRE: Room struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Room) Validate() error {
	if r.BranchID <= 0 {
		return ErrInvalidBranch
	}
	if r.Number == "" {
		return ErrEmptyNumber
	}
	for _, s := range ValidStatuses {
		if r.Status == s {
			return nil
		}
	}
	return ErrInvalidStatus
}

// IsOccupied reports whether the room is currently marked occupied.
func (r *Room) IsOccupied() bool {
	return r.Status == StatusOccupied
}

// OccupancyRate returns occupied/total as a percentage rounded to two decimals.
// A branch with no rooms has a rate of 0.
func OccupancyRate(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(occupied) / float64(total) * 100
	return math.Round(pct*100) / 100
}
