// Package session persists the docked-entry registry and the loaded molecular
// objects between CLI invocations, using SQLite as the storage engine.
package session

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/unizar-flav/viewdock/internal/scene"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

//go:embed schema.sql
var schemaSQL string

// DBFileName is the session database file inside the data directory.
const DBFileName = "session.db"

// BackendSQLite is the only supported storage backend.
const BackendSQLite = "sqlite"

var (
	ErrStoreDetached   = errors.New("store is not attached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrInvalidBackend  = errors.New("invalid storage backend")
)

// Config selects the storage backend and its location.
type Config struct {
	Backend string `yaml:"backend" json:"backend"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// Validate checks that the configuration names a supported backend.
func (c Config) Validate() error {
	if c.Backend != "" && c.Backend != BackendSQLite {
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	return nil
}

// Store holds a session database connection. The zero value is detached;
// call Attach with a Config to open the database.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   Config
	db       *sql.DB
}

// NewStore creates a detached store.
func NewStore() *Store {
	return &Store{}
}

// Attach opens (or creates) the session database under config.DataDir.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database connection. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// Save replaces the stored session with the current registry and scene
// contents in a single transaction.
func (s *Store) Save(reg *docked.Registry, sc *scene.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return ErrStoreDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "entries", "objects"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	headers, err := json.Marshal(reg.Headers())
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`,
		"headers", string(headers)); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`,
		"saved_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	for i, e := range reg.Entries() {
		remarks, err := json.Marshal(e.Remarks)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO entries (position, object, state, remarks) VALUES (?, ?, ?, ?)`,
			i, e.Object, e.State, string(remarks)); err != nil {
			return err
		}
	}

	for i, o := range sc.Objects() {
		states, err := json.Marshal(o.States)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO objects (position, name, states) VALUES (?, ?, ?)`,
			i, o.Name, string(states)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load rebuilds the scene objects from the stored session and returns a
// registry restored over that scene. An empty database yields an empty
// registry.
func (s *Store) Load(sc *scene.Scene) (*docked.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, ErrStoreDetached
	}

	if err := s.loadObjects(sc); err != nil {
		return nil, err
	}
	entries, err := s.loadEntries()
	if err != nil {
		return nil, err
	}
	headers, err := s.loadHeaders()
	if err != nil {
		return nil, err
	}
	return docked.Restore(sc, entries, headers), nil
}

func (s *Store) loadObjects(sc *scene.Scene) error {
	rows, err := s.db.Query(`SELECT name, states FROM objects ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, states string
		if err := rows.Scan(&name, &states); err != nil {
			return err
		}
		o := &scene.Object{Name: name}
		if err := json.Unmarshal([]byte(states), &o.States); err != nil {
			return fmt.Errorf("object %q: %w", name, err)
		}
		sc.AddObject(o)
	}
	return rows.Err()
}

func (s *Store) loadEntries() ([]*docked.Entry, error) {
	rows, err := s.db.Query(`SELECT object, state, remarks FROM entries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*docked.Entry
	for rows.Next() {
		var object, remarks string
		var state int
		if err := rows.Scan(&object, &state, &remarks); err != nil {
			return nil, err
		}
		e := &docked.Entry{Object: object, State: state}
		if err := json.Unmarshal([]byte(remarks), &e.Remarks); err != nil {
			return nil, fmt.Errorf("entry for %q: %w", object, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) loadHeaders() ([]string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, "headers").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var headers []string
	if err := json.Unmarshal([]byte(value), &headers); err != nil {
		return nil, fmt.Errorf("headers: %w", err)
	}
	return headers, nil
}
