package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the storage location used when none is configured.
const DefaultDBPath = "transcrypts.db"

// sqlTimeLayout matches SQLite's CURRENT_TIMESTAMP text format and the
// format written by stamp().
const sqlTimeLayout = "2006-01-02 15:04:05"

// Store provides read/write access to the transcrypt SQLite database.
//
// Absence of a row is a normal outcome, not an error: fetches return nil,
// lists return an empty slice and mutations return false, each after a
// log line. Storage errors never propagate out of a Store method.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if absent) the database at path.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the database connection. Closing is the caller's
// responsibility on every exit path.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the project, line and speaker tables if absent.
// Safe to call against an already-populated store. A failing statement
// is logged and does not abort creation of the remaining tables, so a
// partial schema is possible.
func (s *Store) EnsureSchema() {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(stmt.ddl); err != nil {
			s.log.Error().Err(err).Str("table", stmt.name).Msg("schema statement failed")
		}
	}
}

// exists reports whether a row with the given uid exists in table.
func (s *Store) exists(table string, uid int64) bool {
	var got int64
	query := fmt.Sprintf("SELECT uid FROM %s WHERE uid = ? LIMIT 1", table)
	err := s.db.QueryRow(query, uid).Scan(&got)
	return err == nil
}

// stamp returns the current time in the format used for last_change.
func stamp() string {
	return time.Now().Format(sqlTimeLayout)
}

func timeFromSQL(s string) time.Time {
	t, err := time.Parse(sqlTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
