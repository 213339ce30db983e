package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database with methods for the user profile, saved
// connections, and daily snapshots.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used
// by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "celest.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	// Set busy timeout so concurrent access waits briefly instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't been run yet.
func (s *Store) migrate() error {
	// Ensure schema_version table exists (bootstrap).
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort by filename to guarantee ascending order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		// Check if already applied.
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// AppliedMigrations returns the list of applied migration versions in ascending order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// --- User Profile ---

func (s *Store) SetProfileKey(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_profile (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetProfileKey(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM user_profile WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

func (s *Store) GetAllProfileKeys() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM user_profile")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, rows.Err()
}

// --- Connections ---

func (s *Store) SaveConnection(c Connection) error {
	_, err := s.db.Exec(`
		INSERT INTO connections (id, name, birth_date, birth_time, birth_city, rel_type, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.BirthDate, c.BirthTime, c.BirthCity, c.RelType, c.Score,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetConnection(id string) (Connection, error) {
	var c Connection
	var createdAt string
	err := s.db.QueryRow(`
		SELECT id, name, birth_date, birth_time, birth_city, rel_type, score, created_at
		FROM connections WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.BirthDate, &c.BirthTime, &c.BirthCity, &c.RelType, &c.Score, &createdAt)
	if err == sql.ErrNoRows {
		return Connection{}, ErrNotFound
	}
	if err != nil {
		return Connection{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Connection{}, fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = t
	return c, nil
}

func (s *Store) ListConnections() ([]Connection, error) {
	rows, err := s.db.Query(`
		SELECT id, name, birth_date, birth_time, birth_city, rel_type, score, created_at
		FROM connections ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Connection
	for rows.Next() {
		var c Connection
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.BirthDate, &c.BirthTime, &c.BirthCity, &c.RelType, &c.Score, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		c.CreatedAt = t
		results = append(results, c)
	}
	return results, rows.Err()
}

func (s *Store) DeleteConnection(id string) error {
	res, err := s.db.Exec("DELETE FROM connections WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateConnectionScore persists the latest computed compatibility total
// back onto a saved connection.
func (s *Store) UpdateConnectionScore(id string, score int) error {
	res, err := s.db.Exec("UPDATE connections SET score = ? WHERE id = ?", score, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Snapshots ---

// UpsertSnapshot writes the day's dashboard result; recomputing the same
// day overwrites in place, so there is at most one row per calendar date.
func (s *Store) UpsertSnapshot(snap Snapshot) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (date, mind, body, soul, alignment, tier, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			mind = excluded.mind, body = excluded.body, soul = excluded.soul,
			alignment = excluded.alignment, tier = excluded.tier`,
		snap.Date, snap.Mind, snap.Body, snap.Soul, snap.Alignment, snap.Tier,
		snap.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetSnapshot(date string) (Snapshot, error) {
	var snap Snapshot
	var createdAt string
	err := s.db.QueryRow(`
		SELECT date, mind, body, soul, alignment, tier, created_at
		FROM snapshots WHERE date = ?`, date,
	).Scan(&snap.Date, &snap.Mind, &snap.Body, &snap.Soul, &snap.Alignment, &snap.Tier, &createdAt)
	if err == sql.ErrNoRows {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing created_at: %w", err)
	}
	snap.CreatedAt = t
	return snap, nil
}

// ListSnapshots returns up to limit stored days, newest first.
func (s *Store) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT date, mind, body, soul, alignment, tier, created_at
		FROM snapshots ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt string
		if err := rows.Scan(&snap.Date, &snap.Mind, &snap.Body, &snap.Soul, &snap.Alignment, &snap.Tier, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		snap.CreatedAt = t
		results = append(results, snap)
	}
	return results, rows.Err()
}

// PurgeAll deletes all connections and snapshots. Profile keys survive;
// clearing identity is an explicit profile operation, not a data purge.
func (s *Store) PurgeAll() error {
	if _, err := s.db.Exec("DELETE FROM connections"); err != nil {
		return fmt.Errorf("purging connections: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("purging snapshots: %w", err)
	}
	return nil
}
