package duckdb

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages an in-memory DuckDB mirror of the loaded record set, used
// for ad-hoc read-only SQL exploration. It is not a persistence layer: the
// database lives only as long as the process and is rebuilt on every load.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	QueryTimeout time.Duration
}

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS events (
		id        BIGINT,
		event_id  VARCHAR,
		source_ip VARCHAR,
		username  VARCHAR,
		raw_ts    VARCHAR,
		ts        TIMESTAMP,
		extras    JSON
	)`

// NewStore opens an in-memory DuckDB database and creates the events table.
// An optional queryTimeout can be passed; it defaults to 30s.
func NewStore(queryTimeout ...time.Duration) (*Store, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, err
	}

	qt := 30 * time.Second
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	return &Store{
		db:           db,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}
