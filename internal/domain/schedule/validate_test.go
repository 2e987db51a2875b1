package schedule

import (
	"testing"

	"pawpal-planner/internal/domain/tasks"
)

func placed(id, pet string, duration int, start tasks.TimeOfDay) ScheduledTask {
	return ScheduledTask{
		Task:   task(id, pet, "Task "+id, tasks.PriorityMedium, duration),
		Start:  start,
		Reason: ReasonScheduled,
	}
}

func TestValidate_CleanSchedule(t *testing.T) {
	got := Validate([]ScheduledTask{
		placed("a", "buddy", 30, at(7, 0)),
		placed("b", "buddy", 30, at(7, 30)), // back-to-back, permitido
		placed("c", "misu", 30, at(7, 0)),   // cross-pet overlap, permitido
	})

	if !got.OK || len(got.Violations) != 0 {
		t.Fatalf("expected clean schedule, got %+v", got.Violations)
	}
}

func TestValidate_SamePetOverlap(t *testing.T) {
	got := Validate([]ScheduledTask{
		placed("a", "buddy", 45, at(7, 0)),
		placed("b", "buddy", 30, at(7, 30)),
	})

	if got.OK || len(got.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", got)
	}
	v := got.Violations[0]
	if v.Kind != ViolationSamePetOverlap {
		t.Fatalf("kind = %s, want %s", v.Kind, ViolationSamePetOverlap)
	}
	if len(v.TaskIDs) != 2 || v.TaskIDs[0] != "a" || v.TaskIDs[1] != "b" {
		t.Fatalf("task ids = %v", v.TaskIDs)
	}
}

func TestValidate_ConstraintViolated(t *testing.T) {
	p := placed("meds", "buddy", 30, at(8, 0))
	p.Task.Constraint = &tasks.Constraint{Kind: tasks.ConstraintBefore, At: at(8, 15)}

	got := Validate([]ScheduledTask{p})

	if got.OK || len(got.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", got)
	}
	if got.Violations[0].Kind != ViolationConstraintViolated {
		t.Fatalf("kind = %s", got.Violations[0].Kind)
	}
}

func TestValidate_ConstraintSatisfied(t *testing.T) {
	p := placed("meds", "buddy", 30, at(7, 45))
	p.Task.Constraint = &tasks.Constraint{Kind: tasks.ConstraintBefore, At: at(8, 15)}

	if got := Validate([]ScheduledTask{p}); !got.OK {
		t.Fatalf("ending exactly at the bound must pass, got %+v", got.Violations)
	}
}

func TestValidate_EmptySchedule(t *testing.T) {
	if got := Validate(nil); !got.OK {
		t.Fatalf("empty schedule must be OK, got %+v", got)
	}
}
