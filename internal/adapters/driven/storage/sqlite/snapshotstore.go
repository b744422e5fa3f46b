// Package sqlite provides the SQLite-backed CRM snapshot cache.
// The last successful CRM load is persisted per provider so the assistant
// can rebuild its index offline.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/melioro/connectai/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore persists CRM table payloads in a local SQLite database.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// NewSnapshotStore creates a snapshot store at dataDir/cache.db,
// defaulting to ~/.connectai/data.
func NewSnapshotStore(dataDir string) (*SnapshotStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".connectai", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// WAL keeps concurrent reads cheap while a sync writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SnapshotStore{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate applies pending .up.sql migrations in version order.
func (s *SnapshotStore) migrate(fsys embed.FS) error {
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
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save replaces the provider's snapshot with the given tables, atomically.
func (s *SnapshotStore) Save(ctx context.Context, provider string, tables map[string]domain.TableData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE provider = ?", provider); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	savedAt := time.Now().UTC()
	for tableID, table := range tables {
		payload, err := json.Marshal(table.Data)
		if err != nil {
			return fmt.Errorf("encoding table %s: %w", tableID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshots (provider, table_id, name, entity_type, payload, record_count, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			provider, tableID, table.Name, table.EntityType, string(payload), table.RecordCount, savedAt)
		if err != nil {
			return fmt.Errorf("saving table %s: %w", tableID, err)
		}
	}

	return tx.Commit()
}

// Load returns the provider's cached tables and the snapshot timestamp.
func (s *SnapshotStore) Load(ctx context.Context, provider string) (map[string]domain.TableData, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_id, name, entity_type, payload, record_count, saved_at
		FROM snapshots WHERE provider = ?`, provider)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]domain.TableData)
	var savedAt time.Time

	for rows.Next() {
		var tableID, name, entityType, payload string
		var recordCount int
		if err := rows.Scan(&tableID, &name, &entityType, &payload, &recordCount, &savedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning snapshot row: %w", err)
		}

		var data any
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding table %s: %w", tableID, err)
		}

		tables[tableID] = domain.TableData{
			Name:        name,
			EntityType:  entityType,
			Data:        data,
			RecordCount: recordCount,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating snapshot rows: %w", err)
	}

	if len(tables) == 0 {
		return nil, time.Time{}, domain.ErrNotFound
	}

	return tables, savedAt, nil
}

// Delete removes the provider's snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, provider string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE provider = ?", provider)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
