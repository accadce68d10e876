package projections

import (
	"context"

	roomStore "hotelchain/internal/adapters/storage/room"
	domainBooking "hotelchain/internal/domain/booking"
	domainRoom "hotelchain/internal/domain/room"
)

// BookingStore interface for booking overlap queries.
type BookingStore interface {
	CountConfirmedOverlapping(ctx context.Context, roomID int64, dates domainBooking.DateRange) (int, error)
}

// RoomStore interface for room queries.
type RoomStore interface {
	CountByBranch(ctx context.Context, branchID int64) (roomStore.Counts, error)
	ListByBranch(ctx context.Context, branchID int64) ([]domainRoom.Room, error)
	ListBranchIDs(ctx context.Context) ([]int64, error)
}

// ManagerStore interface for resolving the branch a manager runs.
type ManagerStore interface {
	GetManagerBranchID(ctx context.Context, userID int64) (int64, error)
}
