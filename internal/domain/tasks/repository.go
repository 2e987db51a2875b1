package tasks

import "context"

type Repository interface {
	Create(ctx context.Context, t Task) error
	Update(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id string) (Task, error)
	ListByPet(ctx context.Context, petID string) ([]Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
}
