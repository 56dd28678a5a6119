// Package store provides a SQLite-backed store for named scenarios.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/rent-vs-buy/pkg/scenario"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no scenario has the requested name.
var ErrNotFound = errors.New("scenario not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL UNIQUE,
	inputs   TEXT NOT NULL,
	saved_at TEXT NOT NULL
);
`

// SavedScenario is a stored scenario with its save time.
type SavedScenario struct {
	Name    string          `json:"name"`
	Inputs  scenario.Inputs `json:"inputs"`
	SavedAt time.Time       `json:"savedAt"`
}

// Store persists scenarios by name. Names keep the order in which they were
// first saved.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the store database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores inputs under name, replacing any previous scenario of that name
// without changing its position in List.
func (s *Store) Save(name string, inputs scenario.Inputs) error {
	if name == "" {
		return errors.New("scenario name must not be empty")
	}

	encoded, err := json.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("encoding scenario %s: %w", name, err)
	}

	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.Exec(`INSERT INTO scenarios (name, inputs, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET inputs = excluded.inputs, saved_at = excluded.saved_at`,
		name, string(encoded), savedAt,
	)
	if err != nil {
		return fmt.Errorf("saving scenario %s: %w", name, err)
	}
	return nil
}

// Load returns the inputs saved under name.
func (s *Store) Load(name string) (scenario.Inputs, error) {
	saved, err := s.Metadata(name)
	if err != nil {
		return scenario.Inputs{}, err
	}
	return saved.Inputs, nil
}

// Metadata returns the full saved record for name.
func (s *Store) Metadata(name string) (SavedScenario, error) {
	var encoded, savedAt string
	err := s.db.QueryRow("SELECT inputs, saved_at FROM scenarios WHERE name = ?", name).Scan(&encoded, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedScenario{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return SavedScenario{}, fmt.Errorf("loading scenario %s: %w", name, err)
	}

	saved := SavedScenario{Name: name}
	if err := json.Unmarshal([]byte(encoded), &saved.Inputs); err != nil {
		return SavedScenario{}, fmt.Errorf("decoding scenario %s: %w", name, err)
	}
	if saved.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return SavedScenario{}, fmt.Errorf("decoding save time of %s: %w", name, err)
	}
	return saved, nil
}

// List returns the saved scenario names in first-save order.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM scenarios ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the scenario saved under name. Deleting a missing name is not
// an error.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM scenarios WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting scenario %s: %w", name, err)
	}
	return nil
}
