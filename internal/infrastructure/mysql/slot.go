package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"

	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/store"
)

const errDuplicateEntry = 1062

// Slot stores each collection as one JSON row of the Collections table.
type Slot struct {
	db *sql.DB
}

func NewSlot(db *sql.DB) *Slot {
	return &Slot{db: db}
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, int64, error) {
	query := `SELECT payload, revision FROM Collections WHERE slotKey = ?`

	var payload []byte
	var revision int64
	err := s.db.QueryRowContext(ctx, query, key).Scan(&payload, &revision)
	if err == sql.ErrNoRows {
		return nil, 0, store.ErrSlotEmpty
	}
	if err != nil {
		return nil, 0, fmt.Errorf("querying collection %s: %w", key, err)
	}

	return payload, revision, nil
}

func (s *Slot) Put(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error) {
	if expectedRevision == 0 {
		return s.insert(ctx, key, payload)
	}

	query := `UPDATE Collections SET payload = ?, revision = revision + 1 WHERE slotKey = ? AND revision = ?`

	result, err := s.db.ExecContext(ctx, query, payload, key, expectedRevision)
	if err != nil {
		return 0, fmt.Errorf("updating collection %s: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return 0, apperrors.NewConflictError(fmt.Sprintf("collection %s changed since revision %d", key, expectedRevision))
	}

	return expectedRevision + 1, nil
}

func (s *Slot) insert(ctx context.Context, key string, payload []byte) (int64, error) {
	query := `INSERT INTO Collections (slotKey, payload, revision) VALUES (?, ?, 1)`

	_, err := s.db.ExecContext(ctx, query, key, payload)
	if err != nil {
		var mysqlErr *mysqldriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			return 0, apperrors.NewConflictError(fmt.Sprintf("collection %s was created by another writer", key))
		}
		return 0, fmt.Errorf("inserting collection %s: %w", key, err)
	}

	return 1, nil
}
