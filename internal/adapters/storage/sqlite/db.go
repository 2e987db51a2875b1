package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS owners (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pets (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL,
	name        TEXT NOT NULL,
	species     TEXT NOT NULL,
	preferences TEXT NOT NULL DEFAULT '{}',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets(owner_id);

CREATE TABLE IF NOT EXISTS tasks (
	id               TEXT PRIMARY KEY,
	pet_id           TEXT NOT NULL,
	owner_id         TEXT NOT NULL,
	title            TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL,
	priority         TEXT NOT NULL,
	preferred_time   INTEGER,
	constraint_kind  TEXT,
	constraint_at    INTEGER,
	completed        INTEGER NOT NULL DEFAULT 0,
	frequency        TEXT NOT NULL DEFAULT '',
	date             TEXT,
	parent_task_id   TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_pet ON tasks(pet_id);
CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
`

// Open abre (o crea) la base sqlite local y aplica el schema.
// Pensado para el modo single-user sin servidor de base de datos.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefiere pocos writers concurrentes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000")

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
