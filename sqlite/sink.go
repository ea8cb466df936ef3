package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bfscrawl"
	"github.com/google/uuid"
)

// Record kinds.
const (
	KindVisited    = "visited"
	KindDiscovered = "discovered"
)

// Run is a stored crawl run.
type Run struct {
	ID         string
	SeedURL    string
	State      string
	Visited    int
	Extracted  int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Entry is a stored crawl record.
type Entry struct {
	bfscrawl.Record
	Kind      string
	Hash      string
	CreatedAt time.Time
}

// EntryFilter selects stored records of a run.
type EntryFilter struct {
	RunID  string
	Kind   string
	Limit  int
	Offset int
}

// Compile-time interface verification.
var _ bfscrawl.Sink = (*Sink)(nil)

// Sink stores the records of a single crawl run.
type Sink struct {
	db    *DB
	runID string
	now   func() time.Time
}

// NewSink registers a new run for seedURL and returns a Sink writing to it.
func NewSink(ctx context.Context, db *DB, seedURL string) (*Sink, error) {
	s := &Sink{
		db:    db,
		runID: uuid.New().String(),
		now:   time.Now,
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, started_at)
		VALUES (?, ?, ?)
	`, s.runID, seedURL, formatTimestamp(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return s, nil
}

// RunID returns the identifier of the run this Sink writes to.
func (s *Sink) RunID() string {
	return s.runID
}

// Visited stores a visited record.
func (s *Sink) Visited(ctx context.Context, rec bfscrawl.Record) error {
	return s.insert(ctx, KindVisited, rec)
}

// Discovered stores a discovered record.
func (s *Sink) Discovered(ctx context.Context, rec bfscrawl.Record) error {
	return s.insert(ctx, KindDiscovered, rec)
}

// Finish records the final state and counters of the run.
func (s *Sink) Finish(ctx context.Context, state string, visited, extracted int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs SET state = ?, visited = ?, extracted = ?, finished_at = ?
		WHERE id = ?
	`, state, visited, extracted, formatTimestamp(s.now()), s.runID)
	return err
}

// Close is a no-op; the database is owned by the caller.
func (s *Sink) Close() error {
	return nil
}

func (s *Sink) insert(ctx context.Context, kind string, rec bfscrawl.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (run_id, kind, url, url_hash, level, parent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.runID, kind, rec.URL, HashURL(rec.URL), rec.Level, rec.Parent, formatTimestamp(s.now()))
	if err != nil {
		return fmt.Errorf("failed to store %s record: %w", kind, err)
	}
	return nil
}

// HashURL returns the stored hash of a canonical URL.
func HashURL(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}

// FindRunByID retrieves a run by ID.
func (db *DB) FindRunByID(ctx context.Context, id string) (*Run, error) {
	var run Run
	var startedAt, finishedAt string

	err := db.QueryRowContext(ctx, `
		SELECT id, seed_url, state, visited, extracted, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SeedURL, &run.State, &run.Visited, &run.Extracted, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, bfscrawl.Errorf(bfscrawl.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseTimestamp(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTimestamp(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}

// FindEntries retrieves the records of a run in insertion order.
func (db *DB) FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT url, url_hash, kind, level, parent, created_at
		FROM records
		WHERE run_id = ?`)
	args := []any{filter.RunID}

	if filter.Kind != "" {
		query.WriteString(" AND kind = ?")
		args = append(args, filter.Kind)
	}
	query.WriteString(" ORDER BY id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.URL, &e.Hash, &e.Kind, &e.Level, &e.Parent, &createdAt); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// CountByHash returns how many records of a run carry the URL's hash.
func (db *DB) CountByHash(ctx context.Context, runID, url, kind string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM records WHERE run_id = ? AND url_hash = ? AND kind = ?
	`, runID, HashURL(url), kind).Scan(&n)
	return n, err
}
