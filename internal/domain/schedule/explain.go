package schedule

import (
	"fmt"
	"sort"

	"pawpal-planner/internal/domain/tasks"
)

// Explain transforma la salida del allocator en registros de decisión
// ordenados: colocaciones por hora de inicio asc, después las tareas sin
// lugar. Transformación pura; acá no se calcula nada nuevo.
func Explain(res Result) []DecisionRecord {
	placed := make([]ScheduledTask, len(res.Placements))
	copy(placed, res.Placements)
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Start < placed[j].Start
	})

	out := make([]DecisionRecord, 0, len(placed)+len(res.Unplaced))

	for _, p := range placed {
		start := p.Start
		rec := DecisionRecord{
			TaskID: p.Task.ID,
			Title:  p.Task.Title,
			PetID:  p.Task.PetID,
			Time:   &start,
			Reason: p.Reason,
		}

		switch p.Reason {
		case ReasonPreferredTimeHonored:
			rec.Detail = fmt.Sprintf("placed at the preferred time %s", start)
		case ReasonMovedDueToConflict:
			rec.PreferredTime = copyTime(p.Task.PreferredTime)
			if rec.PreferredTime != nil {
				rec.Detail = fmt.Sprintf("preferred %s was not available, moved to %s", *rec.PreferredTime, start)
			} else {
				rec.Detail = fmt.Sprintf("moved to %s", start)
			}
		case ReasonMovedDueToConstraint:
			rec.Detail = fmt.Sprintf("placed at %s to honor %q", start, constraintLabel(p.Task))
		default:
			rec.Detail = fmt.Sprintf("placed at the first free run, %s", start)
		}

		out = append(out, rec)
	}

	for _, t := range res.Unplaced {
		rec := DecisionRecord{
			TaskID: t.ID,
			Title:  t.Title,
			PetID:  t.PetID,
			Reason: ReasonUnplaced,
		}
		if t.Constraint != nil {
			rec.Detail = fmt.Sprintf("no free run satisfies %q within the window", constraintLabel(t))
		} else {
			rec.Detail = "no free run of sufficient length left in the window"
		}
		out = append(out, rec)
	}

	return out
}

func constraintLabel(t tasks.Task) string {
	if t.Constraint == nil {
		return ""
	}
	return t.Constraint.String()
}

func copyTime(t *tasks.TimeOfDay) *tasks.TimeOfDay {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
