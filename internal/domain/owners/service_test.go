package owners

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Owner
}

func (r *fakeRepo) Create(_ context.Context, o Owner) error {
	r.items[o.ID] = o
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Owner, error) {
	o, ok := r.items[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func TestCreateOwner(t *testing.T) {
	repo := &fakeRepo{items: map[string]Owner{}}
	svc := NewService(repo)
	fixed := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	o, err := svc.Create(ctx, "  Alex  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == "" || o.Name != "Alex" {
		t.Fatalf("owner = %+v", o)
	}
	if !o.CreatedAt.Equal(fixed) {
		t.Fatalf("created at = %s", o.CreatedAt)
	}

	if _, err := svc.Create(ctx, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := svc.GetByID(ctx, o.ID)
	if err != nil || got.Name != "Alex" {
		t.Fatalf("get: (%+v, %v)", got, err)
	}
	if _, err := svc.GetByID(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank id: %v", err)
	}
}
