package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pawpal-planner/internal/domain/tasks"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

const taskColumns = `
	id, pet_id, owner_id,
	title, duration_minutes, priority,
	preferred_time, constraint_kind, constraint_at,
	completed, frequency, date, parent_task_id,
	created_at, updated_at`

func (r *TasksRepo) Create(ctx context.Context, t tasks.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		t.ID,
		t.PetID,
		t.OwnerID,
		t.Title,
		t.DurationMinutes,
		string(t.Priority),
		nullMinutes(t.PreferredTime),
		nullConstraintKind(t.Constraint),
		nullConstraintAt(t.Constraint),
		t.Completed,
		string(t.Frequency),
		nullDate(t.Date),
		t.ParentTaskID,
		encodeTime(t.CreatedAt),
		encodeTime(t.UpdatedAt),
	)
	return err
}

func (r *TasksRepo) Update(ctx context.Context, t tasks.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, duration_minutes = ?, priority = ?,
		    preferred_time = ?, constraint_kind = ?, constraint_at = ?,
		    completed = ?, frequency = ?, date = ?, updated_at = ?
		WHERE id = ?
	`,
		t.Title,
		t.DurationMinutes,
		string(t.Priority),
		nullMinutes(t.PreferredTime),
		nullConstraintKind(t.Constraint),
		nullConstraintAt(t.Constraint),
		t.Completed,
		string(t.Frequency),
		nullDate(t.Date),
		encodeTime(t.UpdatedAt),
		t.ID,
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

func (r *TasksRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tasks.Task{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?
	`, id)

	t, err := scanTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return tasks.Task{}, ErrNotFound
		}
		return tasks.Task{}, err
	}
	return t, nil
}

func (r *TasksRepo) ListByPet(ctx context.Context, petID string) ([]tasks.Task, error) {
	return r.list(ctx, "pet_id", petID)
}

func (r *TasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]tasks.Task, error) {
	return r.list(ctx, "owner_id", ownerID)
}

func (r *TasksRepo) list(ctx context.Context, column, value string) ([]tasks.Task, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	// column viene de un set fijo interno (pet_id/owner_id), nunca del caller.
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE `+column+` = ?
		ORDER BY created_at ASC, id ASC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tasks.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func scanTask(scan func(dest ...any) error) (tasks.Task, error) {
	var t tasks.Task
	var priority, frequency, created, updated string
	var pref, cAt sql.NullInt64
	var cKind, date sql.NullString

	if err := scan(
		&t.ID,
		&t.PetID,
		&t.OwnerID,
		&t.Title,
		&t.DurationMinutes,
		&priority,
		&pref,
		&cKind,
		&cAt,
		&t.Completed,
		&frequency,
		&date,
		&t.ParentTaskID,
		&created,
		&updated,
	); err != nil {
		return tasks.Task{}, err
	}

	t.Priority = tasks.Priority(priority)
	t.Frequency = tasks.Frequency(frequency)
	t.CreatedAt = decodeTime(created)
	t.UpdatedAt = decodeTime(updated)

	if pref.Valid {
		v := tasks.TimeOfDay(pref.Int64)
		t.PreferredTime = &v
	}
	if cKind.Valid && cAt.Valid {
		t.Constraint = &tasks.Constraint{
			Kind: tasks.ConstraintKind(cKind.String),
			At:   tasks.TimeOfDay(cAt.Int64),
		}
	}
	if date.Valid && date.String != "" {
		if d, err := time.Parse("2006-01-02", date.String); err == nil {
			t.Date = &d
		}
	}

	return t, nil
}

func nullMinutes(t *tasks.TimeOfDay) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*t), Valid: true}
}

func nullConstraintKind(c *tasks.Constraint) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(c.Kind), Valid: true}
}

func nullConstraintAt(c *tasks.Constraint) sql.NullInt64 {
	if c == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(c.At), Valid: true}
}

// date se guarda como TEXT "YYYY-MM-DD" (fecha civil, sin zona horaria).
func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format("2006-01-02"), Valid: true}
}
