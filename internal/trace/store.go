package trace

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const createStatsTable = `
CREATE TABLE IF NOT EXISTS instruction_stats (
	run_id     TEXT NOT NULL,
	label      TEXT NOT NULL,
	op         TEXT NOT NULL,
	count      INTEGER NOT NULL,
	mean_ns    REAL NOT NULL,
	min_ns     REAL NOT NULL,
	max_ns     REAL NOT NULL,
	stddev_ns  REAL NOT NULL,
	created_at TEXT NOT NULL
)`

// Store persists probe reports to a sqlite file so runs can be compared
// after the fact. This is observability output only; programs themselves
// are never serialized.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening profile store %s: %w", path, err)
	}
	if _, err := db.Exec(createStatsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing profile store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Save writes one row per opcode under the report's run id. label is the
// source label of the profiled run.
func (s *Store) Save(r Report, label string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, st := range r.Stats {
		if _, err := tx.Exec(
			`INSERT INTO instruction_stats
			 (run_id, label, op, count, mean_ns, min_ns, max_ns, stddev_ns, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, label, st.Op, st.Count, st.MeanNs, st.MinNs, st.MaxNs, st.StdDevNs, now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("saving report %s: %w", r.RunID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error { return s.db.Close() }
