package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelchain/internal/adapters/storage"
	domain "hotelchain/internal/domain/user"
)

const selectUser = "SELECT id, name, email, password_hash, role, branch_id, created_at FROM users"

// SQLStore implements Store over database/sql. It works with both the SQLite and pgx drivers.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new user store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id > 0
// POST: Returns the entity, ErrNotFound, or a store error
func (s *SQLStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, selectUser+" WHERE id = ?", id)
	return scanUser(row.Scan)
}

// GetByEmail retrieves a User by exact email match.
// PRE: email is non-empty
// POST: Returns the entity, ErrNotFound, or a store error
func (s *SQLStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, selectUser+" WHERE email = ?", email)
	return scanUser(row.Scan)
}

// GetManagerBranchID returns the branch of a manager.
// PRE: userID > 0
// POST: Returns the branch id; 0 with ErrNotFound if no manager row exists;
// 0 and nil if the manager has no branch.
func (s *SQLStore) GetManagerBranchID(ctx context.Context, userID int64) (int64, error) {
	var branchID sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT branch_id FROM users WHERE id = ? AND role = ?",
		userID, domain.RoleManager,
	).Scan(&branchID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("manager branch lookup: %w", err)
	}
	return branchID.Int64, nil
}

// Create inserts a new User and returns its ID.
// PRE: u has been validated and PasswordHash is set
// POST: Row inserted, or ErrDuplicateEmail if the email is taken
func (s *SQLStore) Create(ctx context.Context, u domain.User) (int64, error) {
	var branchID any
	if u.HasBranch() {
		branchID = u.BranchID
	}
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password_hash, role, branch_id, created_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		u.Name, u.Email, u.PasswordHash, u.Role, branchID, createdAt.Format(time.RFC3339Nano),
	).Scan(&id)
	if storage.IsUniqueViolation(err) {
		return 0, ErrDuplicateEmail
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// Count returns the total number of users.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...any) error) (domain.User, error) {
	var u domain.User
	var branchID sql.NullInt64
	var createdAt string
	err := scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &branchID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.BranchID = branchID.Int64
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return u, nil
}
