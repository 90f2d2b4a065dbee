package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/session"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.ScopeError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// InsertSession stores a new session.
func InsertSession(ctx context.Context, db *sql.DB, s *session.Session) error {
	snapshotJSON, err := json.Marshal(s.Snapshot)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO sessions (id, snapshot_json, unlocked, created_at, unlocked_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		s.ID, string(snapshotJSON), boolToInt(s.Unlocked), s.CreatedAt, toNullInt64(s.UnlockedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetSession retrieves a session by its ULID.
func GetSession(ctx context.Context, db *sql.DB, id string) (*session.Session, error) {
	query := `
		SELECT id, snapshot_json, unlocked, created_at, unlocked_at
		FROM sessions
		WHERE id = ?
	`

	row := db.QueryRowContext(ctx, query, id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// MarkUnlocked flags a session as unlocked at the given Unix time.
// Unlocking an already unlocked session keeps the original unlock time.
func MarkUnlocked(ctx context.Context, db *sql.DB, id string, now int64) error {
	query := `
		UPDATE sessions
		SET unlocked = 1, unlocked_at = COALESCE(unlocked_at, ?)
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// PurgeSessions permanently deletes sessions created before cutoff (Unix time).
// Returns the number of rows removed.
func PurgeSessions(ctx context.Context, db *sql.DB, cutoff int64) (int, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(rowsAffected), nil
}

// CountSessions returns the number of stored sessions.
func CountSessions(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// scanSession scans a single row into a Session struct.
func scanSession(row *sql.Row) (*session.Session, error) {
	var (
		s            session.Session
		snapshotJSON string
		unlocked     int
		unlockedAt   sql.NullInt64
	)

	if err := row.Scan(&s.ID, &snapshotJSON, &unlocked, &s.CreatedAt, &unlockedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(snapshotJSON), &s.Snapshot); err != nil {
		return nil, err
	}

	s.Unlocked = unlocked != 0
	if unlockedAt.Valid {
		s.UnlockedAt = &unlockedAt.Int64
	}

	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// toNullInt64 converts a *int64 to sql.NullInt64.
func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
