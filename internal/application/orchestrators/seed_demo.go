package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/domain/booking"
	"hotelchain/internal/domain/room"
	"hotelchain/internal/domain/user"
)

// SeedUserStore is the user store interface needed by the seeders.
type SeedUserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (int64, error)
	Count(ctx context.Context) (int, error)
}

// SeedRoomStore is the room store interface needed by the demo seeder.
type SeedRoomStore interface {
	Create(ctx context.Context, r room.Room) (int64, error)
	ListBranchIDs(ctx context.Context) ([]int64, error)
}

// SeedBookingStore is the booking store interface needed by the demo seeder.
type SeedBookingStore interface {
	Create(ctx context.Context, b booking.Booking) (int64, error)
}

// SeedDeps holds stores needed for seeding.
type SeedDeps struct {
	UserStore    SeedUserStore
	RoomStore    SeedRoomStore
	BookingStore SeedBookingStore
}

// ExecuteSeedAdmin creates the initial super admin when the users table is empty.
// PRE: Database is migrated
// POST: At least one user exists
func ExecuteSeedAdmin(ctx context.Context, deps SeedDeps, email, password string) error {
	count, err := deps.UserStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := user.User{Name: "Administrator", Email: email, Role: user.RoleSuperAdmin}
	if err := admin.SetPassword(password); err != nil {
		return fmt.Errorf("admin password: %w", err)
	}
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("admin account: %w", err)
	}
	id, err := deps.UserStore.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	slog.Info("seed_event", "event", "admin_created", "email", email, "user_id", id)
	return nil
}

// demoUser defines a single demo account to seed.
type demoUser struct {
	Name     string
	Email    string
	Role     string
	BranchID int64
}

// DemoPassword is the password of every demo account.
const DemoPassword = "hotel-demo"

func demoUsers() []demoUser {
	return []demoUser{
		{Name: "Morgan Manager", Email: "manager@hotel.test", Role: user.RoleManager, BranchID: 1},
		{Name: "Casey Clerk", Email: "clerk@hotel.test", Role: user.RoleClerk, BranchID: 1},
		{Name: "Quinn Customer", Email: "customer@hotel.test", Role: user.RoleCustomer},
		{Name: "Globetrotter Tours", Email: "agency@hotel.test", Role: user.RoleTravelCompany},
		{Name: "Riley Manager", Email: "manager2@hotel.test", Role: user.RoleManager, BranchID: 2},
	}
}

// ExecuteSeedDemo loads demo users, rooms for two branches and a few bookings.
// It is idempotent: users are skipped by email and rooms are only created into an empty table.
// PRE: Database is migrated; never called in production
// POST: Demo accounts exist with DemoPassword
func ExecuteSeedDemo(ctx context.Context, deps SeedDeps) error {
	created := 0
	for _, def := range demoUsers() {
		_, err := deps.UserStore.GetByEmail(ctx, def.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, userStore.ErrNotFound) {
			return fmt.Errorf("lookup %s: %w", def.Email, err)
		}

		u := user.User{Name: def.Name, Email: def.Email, Role: def.Role, BranchID: def.BranchID}
		if err := u.SetPassword(DemoPassword); err != nil {
			return err
		}
		if _, err := deps.UserStore.Create(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", def.Email, err)
		}
		created++
	}

	branches, err := deps.RoomStore.ListBranchIDs(ctx)
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}
	if len(branches) > 0 {
		slog.Info("seed_event", "event", "demo_seeded", "users_created", created, "rooms_created", 0)
		return nil
	}

	layout := []struct {
		branch   int64
		number   string
		status   string
		bookings [][2]string
	}{
		{1, "101", room.StatusOccupied, [][2]string{{"2024-06-01", "2024-06-05"}}},
		{1, "102", room.StatusOccupied, nil},
		{1, "103", room.StatusAvailable, [][2]string{{"2024-07-10", "2024-07-14"}}},
		{1, "104", room.StatusAvailable, nil},
		{2, "201", room.StatusOccupied, nil},
		{2, "202", room.StatusAvailable, nil},
		{2, "203", room.StatusMaintenance, nil},
	}

	rooms := 0
	for _, l := range layout {
		r := room.Room{BranchID: l.branch, Number: l.number, Status: l.status}
		if err := r.Validate(); err != nil {
			return err
		}
		roomID, err := deps.RoomStore.Create(ctx, r)
		if err != nil {
			return fmt.Errorf("create room %s: %w", l.number, err)
		}
		rooms++
		for _, d := range l.bookings {
			dates, err := booking.ParseDateRange(d[0], d[1])
			if err != nil {
				return err
			}
			b := booking.Booking{RoomID: roomID, Status: booking.StatusConfirmed, DateRange: dates}
			if err := b.Validate(); err != nil {
				return fmt.Errorf("room %s booking: %w", l.number, err)
			}
			if _, err := deps.BookingStore.Create(ctx, b); err != nil {
				return fmt.Errorf("create booking: %w", err)
			}
		}
	}

	slog.Info("seed_event", "event", "demo_seeded", "users_created", created, "rooms_created", rooms)
	return nil
}
