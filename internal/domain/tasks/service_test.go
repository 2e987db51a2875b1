package tasks

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// fakeRepo guarda tareas en un map, suficiente para probar el service.
type fakeRepo struct {
	items map[string]Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Task{}}
}

func (r *fakeRepo) Create(_ context.Context, t Task) error {
	r.items[t.ID] = t
	return nil
}

func (r *fakeRepo) Update(_ context.Context, t Task) error {
	if _, ok := r.items[t.ID]; !ok {
		return ErrNotFound
	}
	r.items[t.ID] = t
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Task, error) {
	t, ok := r.items[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (r *fakeRepo) ListByPet(_ context.Context, petID string) ([]Task, error) {
	var out []Task
	for _, t := range r.items {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]Task, error) {
	var out []Task
	for _, t := range r.items {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	fixed := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func validCreateInput() CreateInput {
	pref := TimeOfDay(7 * 60)
	return CreateInput{
		PetID:           "pet-1",
		OwnerID:         "owner-1",
		Title:           "Morning Walk",
		DurationMinutes: 30,
		Priority:        PriorityHigh,
		PreferredTime:   &pref,
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty pet", func(in *CreateInput) { in.PetID = " " }},
		{"empty owner", func(in *CreateInput) { in.OwnerID = "" }},
		{"empty title", func(in *CreateInput) { in.Title = "  " }},
		{"zero duration", func(in *CreateInput) { in.DurationMinutes = 0 }},
		{"negative duration", func(in *CreateInput) { in.DurationMinutes = -15 }},
		{"unknown priority", func(in *CreateInput) { in.Priority = Priority("urgent") }},
		{"recurring without date", func(in *CreateInput) { in.Frequency = FrequencyDaily }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validCreateInput()
			c.mutate(&in)
			if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreate_TrimsAndPersists(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	in := validCreateInput()
	in.Title = "  Morning Walk  "
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Title != "Morning Walk" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("task not persisted: %v", err)
	}
	if stored.PreferredTime == nil || *stored.PreferredTime != TimeOfDay(7*60) {
		t.Fatalf("preferred time lost: %+v", stored.PreferredTime)
	}
}

func TestUpdate_PatchSemantics(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTitle := "Evening Walk"
	newDur := 45
	updated, err := svc.Update(ctx, created.ID, UpdateInput{
		Title:           &newTitle,
		DurationMinutes: &newDur,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Evening Walk" || updated.DurationMinutes != 45 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Campos no enviados quedan intactos.
	if updated.PreferredTime == nil {
		t.Fatal("preferred time should survive unrelated patch")
	}

	updated, err = svc.Update(ctx, created.ID, UpdateInput{ClearPreferred: true})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if updated.PreferredTime != nil {
		t.Fatal("ClearPreferred should drop the preferred time")
	}

	empty := "  "
	if _, err := svc.Update(ctx, created.ID, UpdateInput{Title: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}

	if _, err := svc.Update(ctx, "missing", UpdateInput{Title: &newTitle}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestComplete_OneOffTask(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, next, err := svc.Complete(ctx, created.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed {
		t.Fatal("task should be completed")
	}
	if next != nil {
		t.Fatal("one-off task must not synthesize a next occurrence")
	}
}

func TestComplete_IsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	d := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	in := validCreateInput()
	in.Frequency = FrequencyWeekly
	in.Date = &d

	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, next, err := svc.Complete(ctx, created.ID)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if next == nil {
		t.Fatal("recurring task should synthesize a next occurrence")
	}

	// Segunda llamada: no-op, sin tercera tarea.
	again, next2, err := svc.Complete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if !again.Completed {
		t.Fatal("task should stay completed")
	}
	if next2 != nil {
		t.Fatal("second complete must not synthesize another occurrence")
	}

	all, _ := repo.ListByOwner(ctx, "owner-1")
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks after double complete, got %d", len(all))
	}
}

func TestComplete_RecurringSynthesizesNext(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	d := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	in := validCreateInput()
	in.Frequency = FrequencyMonthly
	in.Date = &d

	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, next, err := svc.Complete(ctx, created.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if next == nil {
		t.Fatal("expected next occurrence")
	}
	if next.ID == done.ID {
		t.Fatal("next occurrence must get a fresh id")
	}
	if next.ParentTaskID != done.ID {
		t.Fatalf("ParentTaskID = %q, want %q", next.ParentTaskID, done.ID)
	}
	if next.Completed {
		t.Fatal("next occurrence must start incomplete")
	}
	wantDate := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if next.Date == nil || !next.Date.Equal(wantDate) {
		t.Fatalf("next date = %v, want %s", next.Date, wantDate)
	}
	// La siguiente ocurrencia hereda todo lo demás.
	if next.Title != done.Title || next.PetID != done.PetID || next.Priority != done.Priority {
		t.Fatalf("next occurrence does not inherit fields: %+v", next)
	}
	if next.PreferredTime == nil || *next.PreferredTime != *done.PreferredTime {
		t.Fatal("next occurrence should inherit preferred time")
	}
	// Sin aliasing con la tarea original.
	if next.PreferredTime == done.PreferredTime {
		t.Fatal("preferred time pointer must not be shared")
	}

	stored, err := repo.GetByID(ctx, next.ID)
	if err != nil {
		t.Fatalf("next occurrence not persisted: %v", err)
	}
	if stored.ParentTaskID != done.ID {
		t.Fatal("persisted occurrence lost its parent link")
	}
}

func TestSortForDisplay(t *testing.T) {
	at := func(m int) *TimeOfDay { v := TimeOfDay(m); return &v }

	list := []Task{
		{ID: "1", Title: "Brush", Priority: PriorityLow},
		{ID: "2", Title: "Walk", Priority: PriorityHigh, PreferredTime: at(8 * 60)},
		{ID: "3", Title: "Feed", Priority: PriorityHigh, PreferredTime: at(7 * 60)},
		{ID: "4", Title: "Play", Priority: PriorityMedium},
		{ID: "5", Title: "Vet", Priority: PriorityHigh},
	}

	got := SortForDisplay(list)

	var ids []string
	for _, t := range got {
		ids = append(ids, t.ID)
	}
	// High antes que medium/low; dentro de high, hora preferida asc y sin
	// preferencia al final.
	want := []string{"3", "2", "5", "4", "1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}

	// El slice original no se toca.
	if list[0].ID != "1" {
		t.Fatal("SortForDisplay must not mutate its input")
	}
}
