package room

import (
	"context"

	domain "hotelchain/internal/domain/room"
)

// Store persists Room state.
type Store interface {
	Create(ctx context.Context, r domain.Room) (int64, error)
	ListByBranch(ctx context.Context, branchID int64) ([]domain.Room, error)
	ListBranchIDs(ctx context.Context) ([]int64, error)
	CountByBranch(ctx context.Context, branchID int64) (Counts, error)
}

// Counts carries the room tallies for one branch.
type Counts struct {
	Total    int
	Occupied int
}
