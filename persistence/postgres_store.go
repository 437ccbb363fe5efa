package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"antworld/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore reads layouts from PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the layouts table exists
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

// initSchema creates the layouts table. Rows are provisioned by map designers;
// the server only reads them.
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layouts (
		name TEXT PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		ant_x INTEGER NOT NULL,
		ant_y INTEGER NOT NULL,
		rows JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// LoadLayout loads a layout by name
func (ps *PostgresStore) LoadLayout(name string) (*models.Layout, error) {
	query := `SELECT name, width, height, ant_x, ant_y, rows FROM layouts WHERE name = $1`

	var layout models.Layout
	var rowsJSON string

	err := ps.db.QueryRow(query, name).Scan(
		&layout.Name, &layout.Width, &layout.Height,
		&layout.Ant.X, &layout.Ant.Y, &rowsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
		}
		return nil, fmt.Errorf("failed to load layout: %v", err)
	}

	if err := json.Unmarshal([]byte(rowsJSON), &layout.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout rows: %v", err)
	}

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", name, err)
	}
	return &layout, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
