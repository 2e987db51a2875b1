package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("task not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID           string
	OwnerID         string
	Title           string
	DurationMinutes int
	Priority        Priority
	PreferredTime   *TimeOfDay
	Constraint      *Constraint
	Frequency       Frequency
	Date            *time.Time
}

// Create valida los invariantes del modelo ANTES de persistir, para que el
// allocator nunca reciba estado inconsistente (fail fast en el borde).
func (s *Service) Create(ctx context.Context, in CreateInput) (Task, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return Task{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return Task{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Task{}, ErrInvalidInput
	}
	if in.DurationMinutes <= 0 {
		return Task{}, ErrInvalidInput
	}
	if in.Priority.Rank() == 0 {
		return Task{}, ErrInvalidInput
	}
	if in.PreferredTime != nil && !in.PreferredTime.Valid() {
		return Task{}, ErrInvalidInput
	}
	if in.Constraint != nil && !in.Constraint.At.Valid() {
		return Task{}, ErrInvalidInput
	}
	// Invariante: tarea recurrente siempre tiene fecha concreta.
	if in.Frequency != FrequencyNone && in.Date == nil {
		return Task{}, ErrInvalidInput
	}

	now := s.now()
	t := Task{
		ID:              uuid.NewString(),
		PetID:           strings.TrimSpace(in.PetID),
		OwnerID:         strings.TrimSpace(in.OwnerID),
		Title:           strings.TrimSpace(in.Title),
		DurationMinutes: in.DurationMinutes,
		Priority:        in.Priority,
		PreferredTime:   in.PreferredTime,
		Constraint:      in.Constraint,
		Frequency:       in.Frequency,
		Date:            in.Date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Task, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Title           *string
	DurationMinutes *int
	Priority        *Priority
	PreferredTime   *TimeOfDay
	ClearPreferred  bool
	Constraint      *Constraint
	ClearConstraint bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return Task{}, ErrInvalidInput
		}
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return Task{}, ErrInvalidInput
		}
		t.DurationMinutes = *in.DurationMinutes
	}
	if in.Priority != nil {
		if in.Priority.Rank() == 0 {
			return Task{}, ErrInvalidInput
		}
		t.Priority = *in.Priority
	}
	if in.ClearPreferred {
		t.PreferredTime = nil
	} else if in.PreferredTime != nil {
		if !in.PreferredTime.Valid() {
			return Task{}, ErrInvalidInput
		}
		t.PreferredTime = in.PreferredTime
	}
	if in.ClearConstraint {
		t.Constraint = nil
	} else if in.Constraint != nil {
		if !in.Constraint.At.Valid() {
			return Task{}, ErrInvalidInput
		}
		t.Constraint = in.Constraint
	}

	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Complete marca la tarea como completada. Idempotente: completar una tarea
// ya completada es no-op (no genera segunda ocurrencia ni toca UpdatedAt).
//
// Si la tarea es recurrente, sintetiza la próxima ocurrencia: ID nuevo,
// ParentTaskID apuntando a la original, incompleta, fecha avanzada según la
// frecuencia. La persiste vía el repositorio y la devuelve al caller.
func (s *Service) Complete(ctx context.Context, id string) (Task, *Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Task{}, nil, err
	}

	if t.Completed {
		return t, nil, nil
	}

	now := s.now()
	t.Completed = true
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, nil, err
	}

	if t.Frequency == FrequencyNone {
		return t, nil, nil
	}

	if t.Date == nil {
		// No debería pasar: Create lo valida. Reportamos en vez de inventar fecha.
		return Task{}, nil, ErrInvalidInput
	}
	nextDate, err := NextOccurrenceDate(*t.Date, t.Frequency)
	if err != nil {
		return Task{}, nil, err
	}

	next := t.Clone()
	next.ID = uuid.NewString()
	next.ParentTaskID = t.ID
	next.Completed = false
	next.Date = &nextDate
	next.CreatedAt = now
	next.UpdatedAt = now

	if err := s.repo.Create(ctx, next); err != nil {
		return Task{}, nil, err
	}
	return t, &next, nil
}
