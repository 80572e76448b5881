package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Christopher22/larry/internal/domain"
)

var (
	// ErrUserExists is returned when creating a user whose id is taken.
	ErrUserExists = errors.New("user already exists")
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single connection: SQLite is a single-writer engine and the PRAGMAs
	// below are per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and
// referential integrity. foreign_keys=ON makes availability writes fail when
// the referenced user does not exist.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// CreateUser inserts a new user row. The primary key rejects duplicate ids.
func (r *SQLiteRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, chat_id) VALUES (?, ?, ?)`,
		u.ID, u.Name, u.ChatID,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrUserExists
	}
	return err
}

// UserExists reports whether the user id is present.
func (r *SQLiteRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE id = ?`, id,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// LoadUsers returns the users matching ids, ascending by id. Ids without a
// matching row are skipped.
func (r *SQLiteRepo) LoadUsers(ctx context.Context, ids ...int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, chat_id FROM users
		WHERE id IN (`+placeholders+`)
		ORDER BY id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// LoadAllUsers returns every registered user, ascending by id.
func (r *SQLiteRepo) LoadAllUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, chat_id FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// SetAvailability upserts the answer for (meeting, user); an Unknown answer
// deletes the row instead of storing a third state.
func (r *SQLiteRepo) SetAvailability(ctx context.Context, m domain.Meeting, a domain.Availability) error {
	stored := toNullInt64(a.Attendance)
	if !stored.Valid {
		_, err := r.db.ExecContext(ctx, `
			DELETE FROM dates WHERE id = ? AND user_id = ?`,
			m.Key(), a.User.ID,
		)
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dates (id, user_id, is_available) VALUES (?, ?, ?)
		ON CONFLICT(id, user_id) DO UPDATE SET
			is_available = excluded.is_available`,
		m.Key(), a.User.ID, stored.Int64,
	)
	return err
}

// GetAvailability returns the stored answer for one user, Unknown if absent.
func (r *SQLiteRepo) GetAvailability(ctx context.Context, m domain.Meeting, userID int64) (domain.Attendance, error) {
	var stored sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT is_available FROM dates WHERE id = ? AND user_id = ?`,
		m.Key(), userID,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Unknown, nil
	}
	if err != nil {
		return domain.Unknown, err
	}
	return fromNullInt64(stored), nil
}

// Availabilities returns the meeting's answers ordered by user id. With
// includeUnknown the result covers all registered users, Unknown for those
// without a row.
func (r *SQLiteRepo) Availabilities(ctx context.Context, m domain.Meeting, includeUnknown bool) ([]domain.Availability, error) {
	join := "JOIN"
	if includeUnknown {
		join = "LEFT JOIN"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.chat_id, d.is_available
		FROM users u `+join+` dates d ON d.user_id = u.id AND d.id = ?
		ORDER BY u.id ASC`,
		m.Key(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Availability
	for rows.Next() {
		var (
			u      domain.User
			stored sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.ChatID, &stored); err != nil {
			return nil, err
		}
		res = append(res, domain.Availability{
			User:       u,
			Attendance: fromNullInt64(stored),
		})
	}
	return res, rows.Err()
}

// UnknownAvailabilities returns the registered users without an answer for
// the meeting, ascending by id.
func (r *SQLiteRepo) UnknownAvailabilities(ctx context.Context, m domain.Meeting) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, chat_id FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM dates d WHERE d.user_id = u.id AND d.id = ?
		)
		ORDER BY id ASC`,
		m.Key(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// LoadMeetings returns one meeting per distinct date key at or after from,
// oldest first.
func (r *SQLiteRepo) LoadMeetings(ctx context.Context, from time.Time) ([]domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT id FROM dates WHERE id >= ? ORDER BY id ASC`,
		from.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Meeting
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		res = append(res, domain.MeetingFromTimestamp(ts))
	}
	return res, rows.Err()
}

func scanUsers(rows *sql.Rows) ([]domain.User, error) {
	var res []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.ChatID); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
