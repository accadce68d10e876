package user

import (
	"context"
	"errors"

	domain "hotelchain/internal/domain/user"
)

// Store errors
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email is already registered")
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetManagerBranchID(ctx context.Context, userID int64) (int64, error)
	Create(ctx context.Context, u domain.User) (int64, error)
	Count(ctx context.Context) (int, error)
}
