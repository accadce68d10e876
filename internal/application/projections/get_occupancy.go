package projections

import (
	"context"
	"errors"
	"fmt"

	"hotelchain/internal/domain/room"
)

// ErrOccupancyUnavailable is returned when room counts cannot be read.
var ErrOccupancyUnavailable = errors.New("occupancy lookup failed")

// OccupancyDeps holds dependencies for the occupancy projection.
type OccupancyDeps struct {
	RoomStore RoomStore
}

// OccupancyResult carries the occupancy of one branch.
type OccupancyResult struct {
	BranchID int64
	Total    int
	Occupied int
	Rate     float64 // percent, two decimals
}

// QueryOccupancy computes the occupancy rate of a branch.
// PRE: branchID identifies a branch; an unknown branch has zero rooms
// POST: Rate is 0 when the branch has no rooms
// INVARIANT: store faults are errors, never a 0 rate
func QueryOccupancy(ctx context.Context, branchID int64, deps OccupancyDeps) (OccupancyResult, error) {
	counts, err := deps.RoomStore.CountByBranch(ctx, branchID)
	if err != nil {
		return OccupancyResult{}, fmt.Errorf("%w: branch %d: %w", ErrOccupancyUnavailable, branchID, err)
	}
	return OccupancyResult{
		BranchID: branchID,
		Total:    counts.Total,
		Occupied: counts.Occupied,
		Rate:     room.OccupancyRate(counts.Occupied, counts.Total),
	}, nil
}

// QueryChainOccupancy computes occupancy for every branch that has rooms, ordered by branch id.
func QueryChainOccupancy(ctx context.Context, deps OccupancyDeps) ([]OccupancyResult, error) {
	branches, err := deps.RoomStore.ListBranchIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list branches: %w", ErrOccupancyUnavailable, err)
	}
	results := make([]OccupancyResult, 0, len(branches))
	for _, id := range branches {
		r, err := QueryOccupancy(ctx, id, deps)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
