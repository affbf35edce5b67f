package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/collection"
	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

const (
	// DatabaseFile is the database name inside the data directory.
	DatabaseFile = "scans.db"

	// ImagesDir is the blob directory name inside the data directory.
	ImagesDir = "images"
)

// Verify interface compliance.
var (
	_ driven.ScanStore      = (*Store)(nil)
	_ driven.ScanStoreFiles = (*Store)(nil)
)

// Store is a SQLite-backed scan store.
type Store struct {
	db    *sql.DB
	path  string
	blobs *blob.Dir

	mu      sync.RWMutex
	records []domain.ScanRecord
}

// NewStore opens (or creates) the database in dataDir and applies migrations.
// The collection starts empty; call Load to read the stored scans.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	blobs, err := blob.NewDir(filepath.Join(dataDir, ImagesDir))
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Foreign keys are per connection; keep a single one so the pragma sticks.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:      db,
		path:    dbPath,
		blobs:   blobs,
		records: []domain.ScanRecord{},
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CollectionPath returns the database file path.
func (s *Store) CollectionPath() string {
	return s.path
}

// ImagePath returns the path of a blob.
func (s *Store) ImagePath(ref string) (string, error) {
	return s.blobs.Path(ref)
}

// Checkpoint folds the write-ahead log into the main database file.
func (s *Store) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpointing database: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

// Load replaces the in-memory collection with the stored scans.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = []domain.ScanRecord{}

	records, err := s.readAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptCollection, err)
	}

	s.records = records
	logger.Debug("loaded %d scans from %s", len(records), s.path)
	return nil
}

// Persist rewrites both tables from the in-memory collection.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rewrite(ctx, s.records)
}

// Add inserts a record at the end of the collection.
func (s *Store) Add(ctx context.Context, record domain.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := collection.CheckAdd(s.records, record); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), -1) + 1 FROM scans").Scan(&next); err != nil {
		return fmt.Errorf("reading next position: %w", err)
	}
	if err := insertScan(ctx, tx, record, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.records = collection.Append(s.records, record)
	return nil
}

// Delete removes records and their blobs in one transaction.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := collection.Remove(s.records, ids)
	if len(removed) == 0 {
		return nil
	}

	for _, r := range removed {
		if err := s.blobs.Remove(r.ImageRef); err != nil {
			logger.Warn("scan %s: %v", r.ID, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM scans WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range removed {
		if _, err := stmt.ExecContext(ctx, r.ID); err != nil {
			return fmt.Errorf("deleting scan %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.records = kept
	return nil
}

// List returns the collection in order.
func (s *Store) List(_ context.Context) ([]domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Clone(s.records), nil
}

// Get returns the record with the given ID.
func (s *Store) Get(_ context.Context, id string) (*domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Find(s.records, id)
}

// Move repositions a record and renumbers positions.
func (s *Store) Move(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := collection.Move(s.records, from, to)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, "UPDATE scans SET position = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range next {
		if _, err := stmt.ExecContext(ctx, i, r.ID); err != nil {
			return fmt.Errorf("updating position of %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.records = next
	return nil
}

// SaveImage stores an image blob.
func (s *Store) SaveImage(_ context.Context, data []byte) (string, error) {
	return s.blobs.Save(data)
}

// LoadImage reads an image blob.
func (s *Store) LoadImage(_ context.Context, ref string) ([]byte, error) {
	return s.blobs.Load(ref)
}

// RemoveImage deletes an image blob.
func (s *Store) RemoveImage(_ context.Context, ref string) error {
	return s.blobs.Remove(ref)
}

// rewrite replaces the stored collection with records. Callers hold mu.
func (s *Store) rewrite(ctx context.Context, records []domain.ScanRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM scans"); err != nil {
		return fmt.Errorf("clearing scans: %w", err)
	}
	for i, r := range records {
		if err := insertScan(ctx, tx, r, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertScan(ctx context.Context, tx *sql.Tx, r domain.ScanRecord, position int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO scans (id, position, scanned_at, recognized_text, image_ref)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, position, r.Timestamp.UTC().Format(time.RFC3339Nano), r.RecognizedText, r.ImageRef)
	if err != nil {
		return fmt.Errorf("saving scan %s: %w", r.ID, err)
	}

	for i, ing := range r.Ingredients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO scan_ingredients (scan_id, position, id, name, safety, matched_with)
			VALUES (?, ?, ?, ?, ?, ?)
		`, r.ID, i, ing.ID, ing.Name, ing.Safety.String(), nullString(ing.MatchedWith))
		if err != nil {
			return fmt.Errorf("saving ingredient %d of scan %s: %w", i, r.ID, err)
		}
	}
	return nil
}

func (s *Store) readAll(ctx context.Context) ([]domain.ScanRecord, error) {
	records, err := s.readScans(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.ID] = i
	}
	if err := s.readIngredients(ctx, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) readScans(ctx context.Context) ([]domain.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scanned_at, recognized_text, image_ref
		FROM scans ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	records := []domain.ScanRecord{}
	for rows.Next() {
		var r domain.ScanRecord
		var scannedAt string
		if err := rows.Scan(&r.ID, &scannedAt, &r.RecognizedText, &r.ImageRef); err != nil {
			return nil, fmt.Errorf("scanning scan: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("scan %s: bad timestamp: %w", r.ID, err)
		}
		r.Timestamp = ts
		r.Ingredients = []domain.ClassifiedIngredient{}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) readIngredients(ctx context.Context, records []domain.ScanRecord, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scan_id, id, name, safety, matched_with
		FROM scan_ingredients ORDER BY scan_id, position
	`)
	if err != nil {
		return fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scanID, safety string
		var ing domain.ClassifiedIngredient
		var matched sql.NullString
		if err := rows.Scan(&scanID, &ing.ID, &ing.Name, &safety, &matched); err != nil {
			return fmt.Errorf("scanning ingredient: %w", err)
		}
		i, ok := index[scanID]
		if !ok {
			return errors.New("ingredient references unknown scan " + scanID)
		}
		ing.Safety = domain.ParseSafety(safety)
		if matched.Valid {
			m := matched.String
			ing.MatchedWith = &m
		}
		records[i].Ingredients = append(records[i].Ingredients, ing)
	}
	return rows.Err()
}

// nullString converts an optional string to a nullable column value.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
