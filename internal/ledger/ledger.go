package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/blake2b"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store records generation runs and the digest of every page they wrote.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded build.
type Run struct {
	ID             string
	CatalogVersion string
	Fingerprint    string
	StartedAt      time.Time
	Pages          int
	Failures       int
}

// PageRecord is the digest of one rendered page.
type PageRecord struct {
	Location string
	Service  string
	Digest   string
}

// Key returns "<location>/<service>".
func (p PageRecord) Key() string {
	return p.Location + "/" + p.Service
}

// Open opens or creates the ledger database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Digest returns the hex BLAKE2b-256 digest of rendered page content.
func Digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// LastRun returns the most recent run, or nil when nothing was recorded yet.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Runs returns up to limit runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, catalog_version, fingerprint, started_at, pages, failures
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			started string
		)
		if err := rows.Scan(&r.ID, &r.CatalogVersion, &r.Fingerprint, &started, &r.Pages, &r.Failures); err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s has invalid start time: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Changed returns the pages whose digest differs from the last recorded
// digest for the same location and service, including pages never recorded.
func (s *Store) Changed(ctx context.Context, pages []PageRecord) ([]PageRecord, error) {
	stmt, err := s.db.PrepareContext(ctx, `SELECT digest FROM pages WHERE location = ? AND service = ?`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare page lookup: %w", err)
	}
	defer stmt.Close()

	var changed []PageRecord
	for _, p := range pages {
		var digest string
		err := stmt.QueryRowContext(ctx, p.Location, p.Service).Scan(&digest)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			changed = append(changed, p)
		case err != nil:
			return nil, fmt.Errorf("failed to look up %s: %w", p.Key(), err)
		case digest != p.Digest:
			changed = append(changed, p)
		}
	}
	return changed, nil
}

// Record stores a run and the digests of its pages in one transaction. The
// run ID and start time are filled in when empty.
func (s *Store) Record(ctx context.Context, run Run, pages []PageRecord) (Run, error) {
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	if run.ID == "" {
		run.ID = ulid.MustNew(ulid.Timestamp(run.StartedAt), ulid.DefaultEntropy()).String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, catalog_version, fingerprint, started_at, pages, failures)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.CatalogVersion, run.Fingerprint, run.StartedAt.UTC().Format(time.RFC3339Nano), run.Pages, run.Failures,
	); err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}

	for _, p := range pages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pages (location, service, digest, run_id) VALUES (?, ?, ?, ?)
			 ON CONFLICT (location, service) DO UPDATE SET digest = excluded.digest, run_id = excluded.run_id`,
			p.Location, p.Service, p.Digest, run.ID,
		); err != nil {
			return Run{}, fmt.Errorf("failed to record page %s: %w", p.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}
	return run, nil
}
