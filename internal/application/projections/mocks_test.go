package projections

import (
	"context"

	roomStore "hotelchain/internal/adapters/storage/room"
	userStore "hotelchain/internal/adapters/storage/user"
	domainBooking "hotelchain/internal/domain/booking"
	domainRoom "hotelchain/internal/domain/room"
	domainUser "hotelchain/internal/domain/user"
)

type mockBookingStore struct {
	bookings []domainBooking.Booking
	err      error
}

// CountConfirmedOverlapping counts seeded confirmed bookings that overlap dates.
// PRE: roomID > 0
// POST: Returns count >= 0 or the seeded error
func (m *mockBookingStore) CountConfirmedOverlapping(_ context.Context, roomID int64, dates domainBooking.DateRange) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.IsConfirmed() && b.Overlaps(dates) {
			n++
		}
	}
	return n, nil
}

type mockRoomStore struct {
	rooms []domainRoom.Room
	err   error
}

// CountByBranch tallies seeded rooms of a branch.
// PRE: none
// POST: Returns counts or the seeded error
func (m *mockRoomStore) CountByBranch(_ context.Context, branchID int64) (roomStore.Counts, error) {
	if m.err != nil {
		return roomStore.Counts{}, m.err
	}
	var c roomStore.Counts
	for _, r := range m.rooms {
		if r.BranchID != branchID {
			continue
		}
		c.Total++
		if r.IsOccupied() {
			c.Occupied++
		}
	}
	return c, nil
}

// ListByBranch returns seeded rooms of a branch in seed order.
func (m *mockRoomStore) ListByBranch(_ context.Context, branchID int64) ([]domainRoom.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domainRoom.Room
	for _, r := range m.rooms {
		if r.BranchID == branchID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListBranchIDs returns distinct branch ids in seed order.
func (m *mockRoomStore) ListBranchIDs(_ context.Context) ([]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	seen := map[int64]bool{}
	var ids []int64
	for _, r := range m.rooms {
		if !seen[r.BranchID] {
			seen[r.BranchID] = true
			ids = append(ids, r.BranchID)
		}
	}
	return ids, nil
}

type mockUserStore struct {
	users map[int64]domainUser.User
	err   error
}

// GetByID returns a seeded user.
// PRE: id > 0
// POST: Returns the user, userStore.ErrNotFound or the seeded error
func (m *mockUserStore) GetByID(_ context.Context, id int64) (domainUser.User, error) {
	if m.err != nil {
		return domainUser.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return domainUser.User{}, userStore.ErrNotFound
	}
	return u, nil
}

// GetManagerBranchID mirrors the SQL store: not found unless the user is a manager.
func (m *mockUserStore) GetManagerBranchID(_ context.Context, userID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	u, ok := m.users[userID]
	if !ok || u.Role != domainUser.RoleManager {
		return 0, userStore.ErrNotFound
	}
	return u.BranchID, nil
}

// chainRooms is a two-branch fixture: branch 1 is 2/4 occupied, branch 2 is 1/3.
func chainRooms() []domainRoom.Room {
	return []domainRoom.Room{
		{ID: 1, BranchID: 1, Number: "101", Status: domainRoom.StatusOccupied},
		{ID: 2, BranchID: 1, Number: "102", Status: domainRoom.StatusOccupied},
		{ID: 3, BranchID: 1, Number: "103", Status: domainRoom.StatusAvailable},
		{ID: 4, BranchID: 1, Number: "104", Status: domainRoom.StatusMaintenance},
		{ID: 5, BranchID: 2, Number: "201", Status: domainRoom.StatusOccupied},
		{ID: 6, BranchID: 2, Number: "202", Status: domainRoom.StatusAvailable},
		{ID: 7, BranchID: 2, Number: "203", Status: domainRoom.StatusAvailable},
	}
}
