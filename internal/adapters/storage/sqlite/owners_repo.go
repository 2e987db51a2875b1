package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pawpal-planner/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (id, name, created_at, updated_at)
		VALUES (?,?,?,?)
	`,
		o.ID,
		o.Name,
		encodeTime(o.CreatedAt),
		encodeTime(o.UpdatedAt),
	)
	return err
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM owners
		WHERE id = ?
	`, id)

	var o owners.Owner
	var created, updated string
	if err := row.Scan(&o.ID, &o.Name, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return owners.Owner{}, ErrNotFound
		}
		return owners.Owner{}, err
	}

	o.CreatedAt = decodeTime(created)
	o.UpdatedAt = decodeTime(updated)
	return o, nil
}

// Timestamps como TEXT RFC3339: legibles con el CLI de sqlite y ordenables
// lexicográficamente.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
