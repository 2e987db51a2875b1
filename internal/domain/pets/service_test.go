package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Pet
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Pet{}}
}

func (r *fakeRepo) Create(_ context.Context, p Pet) error {
	r.items[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.items[p.ID]; !ok {
		return ErrNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.items[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]Pet, error) {
	var out []Pet
	for _, p := range r.items {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	fixed := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func TestCreate_NormalizesSpecies(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	cases := map[string]Species{
		"Dog":    SpeciesDog,
		" CAT ":  SpeciesCat,
		"bird":   SpeciesBird,
		"iguana": SpeciesOther,
		"":       SpeciesOther,
	}
	for in, want := range cases {
		p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Pet", Species: in})
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if p.Species != want {
			t.Fatalf("%q: species = %s, want %s", in, p.Species, want)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, " ", CreateInput{Name: "Buddy"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank owner, got %v", err)
	}
	if _, err := svc.Create(ctx, "owner-1", CreateInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestSetPreferences_MergeAndDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{
		Name:        "Buddy",
		Species:     "dog",
		Preferences: map[string]string{"walk_time": "morning"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetPreferences(ctx, p.ID, map[string]string{
		"walk_time": "evening", // reemplaza
		"food":      "kibble",  // agrega
	})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if updated.Preferences["walk_time"] != "evening" || updated.Preferences["food"] != "kibble" {
		t.Fatalf("preferences = %v", updated.Preferences)
	}

	// Valor vacío borra la clave.
	updated, err = svc.SetPreferences(ctx, p.ID, map[string]string{"food": ""})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := updated.Preferences["food"]; ok {
		t.Fatalf("food should be deleted: %v", updated.Preferences)
	}
	if updated.Preferences["walk_time"] != "evening" {
		t.Fatal("unrelated keys must survive")
	}

	if _, err := svc.SetPreferences(ctx, "missing", map[string]string{"a": "b"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOwnerOf(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Buddy", Species: "dog"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	owner, err := svc.OwnerOf(ctx, p.ID)
	if err != nil || owner != "owner-1" {
		t.Fatalf("OwnerOf = (%q, %v)", owner, err)
	}
	if _, err := svc.OwnerOf(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
