package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pawpal-planner/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	prefs, err := json.Marshal(nonNil(p.Preferences))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (id, owner_id, name, species, preferences, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		string(p.Species),
		string(prefs),
		encodeTime(p.CreatedAt),
		encodeTime(p.UpdatedAt),
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	prefs, err := json.Marshal(nonNil(p.Preferences))
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = ?, species = ?, preferences = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Name,
		string(p.Species),
		string(prefs),
		encodeTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, species, preferences, created_at, updated_at
		FROM pets
		WHERE id = ?
	`, id)

	p, err := scanPet(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, species, preferences, created_at, updated_at
		FROM pets
		WHERE owner_id = ?
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	var species, prefs, created, updated string

	if err := scan(&p.ID, &p.OwnerID, &p.Name, &species, &prefs, &created, &updated); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	if prefs != "" {
		if err := json.Unmarshal([]byte(prefs), &p.Preferences); err != nil {
			return pets.Pet{}, err
		}
	}
	p.CreatedAt = decodeTime(created)
	p.UpdatedAt = decodeTime(updated)
	return p, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
