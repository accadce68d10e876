package projections

import (
	"context"
	"errors"
	"fmt"

	userStore "hotelchain/internal/adapters/storage/user"
)

var (
	// ErrNoManagerBranch means the user is not a manager or runs no branch.
	ErrNoManagerBranch = errors.New("user does not manage a branch")
	// ErrBranchLookupFailed wraps store faults while resolving a branch.
	ErrBranchLookupFailed = errors.New("branch lookup failed")
)

// ManagerBranchDeps holds dependencies for the manager-branch projection.
type ManagerBranchDeps struct {
	ManagerStore ManagerStore
}

// QueryManagerBranch resolves the branch managed by userID.
// PRE: userID > 0
// POST: Returns a branch id > 0, ErrNoManagerBranch, or a wrapped ErrBranchLookupFailed
func QueryManagerBranch(ctx context.Context, userID int64, deps ManagerBranchDeps) (int64, error) {
	branchID, err := deps.ManagerStore.GetManagerBranchID(ctx, userID)
	if errors.Is(err, userStore.ErrNotFound) {
		return 0, ErrNoManagerBranch
	}
	if err != nil {
		return 0, fmt.Errorf("%w: user %d: %w", ErrBranchLookupFailed, userID, err)
	}
	if branchID <= 0 {
		return 0, ErrNoManagerBranch
	}
	return branchID, nil
}
