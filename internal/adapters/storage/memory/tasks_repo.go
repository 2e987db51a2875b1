package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pawpal-planner/internal/domain/tasks"
)

type tasksRepo struct {
	mu   sync.RWMutex
	byID map[string]tasks.Task
}

func NewTasksRepo() tasks.Repository {
	return &tasksRepo{
		byID: make(map[string]tasks.Task),
	}
}

func (r *tasksRepo) Create(ctx context.Context, t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("task already exists")
	}
	r.byID[t.ID] = t.Clone()
	return nil
}

func (r *tasksRepo) Update(ctx context.Context, t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task id required")
	}
	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = t.Clone()
	return nil
}

func (r *tasksRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return tasks.Task{}, ErrNotFound
	}
	return t.Clone(), nil
}

func (r *tasksRepo) ListByPet(ctx context.Context, petID string) ([]tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tasks.Task, 0)
	for _, t := range r.byID {
		if t.PetID == petID {
			out = append(out, t.Clone())
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *tasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tasks.Task, 0)
	for _, t := range r.byID {
		if t.OwnerID == ownerID {
			out = append(out, t.Clone())
		}
	}
	sortByCreation(out)
	return out, nil
}

func sortByCreation(list []tasks.Task) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
