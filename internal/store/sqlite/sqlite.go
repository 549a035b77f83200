package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vovakirdan/bingohub/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	room           TEXT NOT NULL,
	winner         TEXT NOT NULL,
	winning_values TEXT NOT NULL,
	ended_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_room ON results(room, ended_at DESC);
`

// SQLiteStore implements store.ResultStore for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ store.ResultStore = (*SQLiteStore)(nil)

// New opens the database at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply schema without migrations.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; it also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveResult inserts a result and sets its ID.
func (s *SQLiteStore) SaveResult(ctx context.Context, r *store.Result) error {
	values, err := json.Marshal(r.WinningValues)
	if err != nil {
		return fmt.Errorf("marshal winning values: %w", err)
	}

	query := `
		INSERT INTO results (room, winner, winning_values, ended_at)
		VALUES (?, ?, ?, ?)
	`
	res, err := s.db.ExecContext(ctx, query, r.Room, r.Winner, string(values), r.EndedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	return nil
}

// ListResults returns results newest first.
func (s *SQLiteStore) ListResults(ctx context.Context, filter store.ResultFilter) ([]store.Result, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = store.DefaultResultLimit
	}

	query := `
		SELECT id, room, winner, winning_values, ended_at
		FROM results
		WHERE (? = '' OR room = ?)
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, filter.Room, filter.Room, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []store.Result
	for rows.Next() {
		var (
			r       store.Result
			values  string
			endedAt time.Time
		)
		if err := rows.Scan(&r.ID, &r.Room, &r.Winner, &values, &endedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(values), &r.WinningValues); err != nil {
			return nil, fmt.Errorf("unmarshal winning values: %w", err)
		}
		r.EndedAt = endedAt
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
