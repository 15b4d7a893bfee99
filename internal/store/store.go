package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/awaistahir/energy-opt/internal/energy"
	_ "modernc.org/sqlite"
)

// Store handles persistent storage of dashboard preferences using SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new store and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize creates the database schema
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		id TEXT PRIMARY KEY,
		days INTEGER NOT NULL DEFAULT 2,
		table_rows INTEGER NOT NULL DEFAULT 10,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// SaveSettings saves or updates dashboard settings
func (s *Store) SaveSettings(st *energy.Settings) error {
	query := `INSERT OR REPLACE INTO settings (id, days, table_rows, updated_at)
		VALUES (?, ?, ?, ?)`

	_, err := s.db.Exec(query, st.ID, st.Days, st.TableRows, time.Now())
	return err
}

// EnsureSettings stores st only if no settings exist for its ID yet
func (s *Store) EnsureSettings(st *energy.Settings) error {
	query := `INSERT OR IGNORE INTO settings (id, days, table_rows, updated_at)
		VALUES (?, ?, ?, ?)`

	_, err := s.db.Exec(query, st.ID, st.Days, st.TableRows, time.Now())
	return err
}

// GetSettings retrieves settings by ID, falling back to defaults when none
// have been saved yet
func (s *Store) GetSettings(id string) (*energy.Settings, error) {
	query := `SELECT id, days, table_rows FROM settings WHERE id = ?`

	var st energy.Settings
	err := s.db.QueryRow(query, id).Scan(&st.ID, &st.Days, &st.TableRows)
	if errors.Is(err, sql.ErrNoRows) {
		return energy.DefaultSettings(id), nil
	}
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// DeleteSettings removes stored settings so defaults apply again
func (s *Store) DeleteSettings(id string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE id = ?`, id)
	return err
}
