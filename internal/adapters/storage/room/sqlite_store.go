package room

import (
	"context"
	"fmt"

	"hotelchain/internal/adapters/storage"
	domain "hotelchain/internal/domain/room"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new room store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Create inserts a new Room and returns its ID.
// PRE: r has been validated
// POST: Row inserted
func (s *SQLStore) Create(ctx context.Context, r domain.Room) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO rooms (branch_id, number, status) VALUES (?, ?, ?) RETURNING id",
		r.BranchID, r.Number, r.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert room: %w", err)
	}
	return id, nil
}

// ListByBranch returns the rooms of a branch ordered by number.
// PRE: branchID > 0
// POST: Returns matching rooms (possibly empty)
func (s *SQLStore) ListByBranch(ctx context.Context, branchID int64) ([]domain.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, branch_id, number, status FROM rooms WHERE branch_id = ? ORDER BY number, id",
		branchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Room
	for rows.Next() {
		var r domain.Room
		if err := rows.Scan(&r.ID, &r.BranchID, &r.Number, &r.Status); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListBranchIDs returns every branch that owns at least one room.
func (s *SQLStore) ListBranchIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT branch_id FROM rooms ORDER BY branch_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountByBranch returns the total and occupied room counts of a branch in one query.
// PRE: branchID > 0
// POST: Returns zero counts for a branch with no rooms
func (s *SQLStore) CountByBranch(ctx context.Context, branchID int64) (Counts, error) {
	var c Counts
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) FROM rooms WHERE branch_id = ?",
		domain.StatusOccupied, branchID,
	).Scan(&c.Total, &c.Occupied)
	if err != nil {
		return Counts{}, fmt.Errorf("count rooms: %w", err)
	}
	return c, nil
}
