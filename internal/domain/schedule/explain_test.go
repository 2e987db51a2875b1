package schedule

import (
	"strings"
	"testing"

	"pawpal-planner/internal/domain/tasks"
)

func TestExplain_OrdersByStartTimeAndAppendsUnplaced(t *testing.T) {
	moved := task("moved", "buddy", "Park", tasks.PriorityMedium, 45)
	moved.PreferredTime = atP(7, 0)

	res := Result{
		Placements: []ScheduledTask{
			{Task: moved, Start: at(7, 30), Reason: ReasonMovedDueToConflict},
			{Task: task("walk", "buddy", "Walk", tasks.PriorityHigh, 30), Start: at(7, 0), Reason: ReasonPreferredTimeHonored},
		},
		Unplaced: []tasks.Task{task("lost", "misu", "Feed", tasks.PriorityLow, 30)},
	}

	got := Explain(res)

	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].TaskID != "walk" || got[1].TaskID != "moved" || got[2].TaskID != "lost" {
		t.Fatalf("order = %s, %s, %s", got[0].TaskID, got[1].TaskID, got[2].TaskID)
	}

	// La tarea movida lleva el preferred time original para el render.
	if got[1].PreferredTime == nil || *got[1].PreferredTime != at(7, 0) {
		t.Fatalf("moved record missing preferred time: %+v", got[1])
	}
	if got[1].Time == nil || *got[1].Time != at(7, 30) {
		t.Fatalf("moved record time = %v", got[1].Time)
	}
	if !strings.Contains(got[1].Detail, "07:00") || !strings.Contains(got[1].Detail, "07:30") {
		t.Fatalf("detail = %q", got[1].Detail)
	}

	// Sin colocar: sin hora, con motivo.
	if got[2].Time != nil || got[2].Reason != ReasonUnplaced {
		t.Fatalf("unplaced record = %+v", got[2])
	}
}

func TestExplain_ConstraintDetails(t *testing.T) {
	meds := task("meds", "buddy", "Meds", tasks.PriorityHigh, 15)
	meds.Constraint = &tasks.Constraint{Kind: tasks.ConstraintAfter, At: at(20, 0)}

	res := Result{
		Placements: []ScheduledTask{{Task: meds, Start: at(20, 0), Reason: ReasonMovedDueToConstraint}},
	}

	got := Explain(res)
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	if !strings.Contains(got[0].Detail, "after 20:00") {
		t.Fatalf("detail = %q", got[0].Detail)
	}
}

func TestExplain_UnplacedWithConstraintNamesIt(t *testing.T) {
	lost := task("lost", "buddy", "Late Walk", tasks.PriorityHigh, 60)
	lost.Constraint = &tasks.Constraint{Kind: tasks.ConstraintAfter, At: at(21, 30)}

	got := Explain(Result{Unplaced: []tasks.Task{lost}})
	if len(got) != 1 || !strings.Contains(got[0].Detail, "after 21:30") {
		t.Fatalf("got %+v", got)
	}
}
