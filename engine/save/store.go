package save

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrNotFound is returned by Store.Load when no save exists under a name.
var ErrNotFound = errors.New("save not found")

// Store keeps save files by name.
type Store interface {
	Save(name string, data []byte) error
	Load(name string) ([]byte, error)
	Delete(name string) error
	Close() error
}

// Open returns the store selected by dbType: "postgres" connects to url,
// anything else keeps files under dir.
func Open(dbType, url, dir string) (Store, error) {
	if dbType == "postgres" {
		if url == "" {
			return nil, errors.New("postgres store needs DATABASE_URL")
		}
		return NewPostgresStore(url)
	}
	return NewFileStore(dir), nil
}

// FileStore keeps each save as <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, name+".json")
}

func (fs *FileStore) Save(name string, data []byte) error {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("creating save dir: %w", err)
	}
	if err := os.WriteFile(fs.path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing save %q: %w", name, err)
	}
	return nil
}

func (fs *FileStore) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %q: %w", name, err)
	}
	return data, nil
}

func (fs *FileStore) Delete(name string) error {
	err := os.Remove(fs.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting save %q: %w", name, err)
	}
	return nil
}

func (fs *FileStore) Close() error { return nil }

// PostgresStore keeps saves in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and creates the saves table if
// needed.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

func (ps *PostgresStore) Save(name string, data []byte) error {
	query := `
	INSERT INTO saves (name, data) VALUES ($1, $2)
	ON CONFLICT (name)
	DO UPDATE SET data = $2, updated_at = NOW()
	`
	if _, err := ps.db.Exec(query, name, string(data)); err != nil {
		return fmt.Errorf("failed to save %q: %w", name, err)
	}
	return nil
}

func (ps *PostgresStore) Load(name string) ([]byte, error) {
	var data string
	err := ps.db.QueryRow(`SELECT data FROM saves WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", name, err)
	}
	return []byte(data), nil
}

func (ps *PostgresStore) Delete(name string) error {
	if _, err := ps.db.Exec(`DELETE FROM saves WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
