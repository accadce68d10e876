package projections

import (
	"context"
	"errors"
	"fmt"

	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/domain/room"
	"hotelchain/internal/domain/user"
)

// DashboardUserStore defines the user store interface needed by the dashboard projection.
type DashboardUserStore interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetManagerBranchID(ctx context.Context, userID int64) (int64, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Role   string
	UserID int64
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	UserStore DashboardUserStore
	RoomStore RoomStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Role string

	// Admin
	Branches []OccupancyResult

	// Manager and clerk
	BranchID      int64
	Occupancy     *OccupancyResult
	Rooms         []room.Room
	BranchMissing bool

	// Customer, travel company and clerk
	ShowAvailability bool
}

// QueryGetDashboard aggregates dashboard data based on the user's role.
// PRE: query.Role is a known role; the caller has already authorized it
// POST: Store faults are returned as errors; a missing branch sets BranchMissing
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	result := DashboardResult{Role: query.Role}
	occDeps := OccupancyDeps{RoomStore: deps.RoomStore}

	switch query.Role {
	case user.RoleSuperAdmin:
		branches, err := QueryChainOccupancy(ctx, occDeps)
		if err != nil {
			return DashboardResult{}, err
		}
		result.Branches = branches

	case user.RoleManager:
		branchID, err := QueryManagerBranch(ctx, query.UserID, ManagerBranchDeps{ManagerStore: deps.UserStore})
		if errors.Is(err, ErrNoManagerBranch) {
			result.BranchMissing = true
			return result, nil
		}
		if err != nil {
			return DashboardResult{}, err
		}
		if err := result.loadBranch(ctx, branchID, deps, true); err != nil {
			return DashboardResult{}, err
		}

	case user.RoleClerk:
		result.ShowAvailability = true
		u, err := deps.UserStore.GetByID(ctx, query.UserID)
		if errors.Is(err, userStore.ErrNotFound) {
			result.BranchMissing = true
			return result, nil
		}
		if err != nil {
			return DashboardResult{}, fmt.Errorf("%w: user %d: %w", ErrBranchLookupFailed, query.UserID, err)
		}
		if !u.HasBranch() {
			result.BranchMissing = true
			return result, nil
		}
		if err := result.loadBranch(ctx, u.BranchID, deps, false); err != nil {
			return DashboardResult{}, err
		}

	case user.RoleCustomer, user.RoleTravelCompany:
		result.ShowAvailability = true
	}

	return result, nil
}

// loadBranch fills the branch rooms and, when withOccupancy is set, its occupancy.
func (r *DashboardResult) loadBranch(ctx context.Context, branchID int64, deps GetDashboardDeps, withOccupancy bool) error {
	r.BranchID = branchID
	if withOccupancy {
		occ, err := QueryOccupancy(ctx, branchID, OccupancyDeps{RoomStore: deps.RoomStore})
		if err != nil {
			return err
		}
		r.Occupancy = &occ
	}
	rooms, err := deps.RoomStore.ListByBranch(ctx, branchID)
	if err != nil {
		return fmt.Errorf("list rooms for branch %d: %w", branchID, err)
	}
	r.Rooms = rooms
	return nil
}
