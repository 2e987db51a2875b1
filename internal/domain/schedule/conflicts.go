package schedule

import (
	"fmt"

	"pawpal-planner/internal/domain/tasks"
)

// DetectConflicts enumera TODOS los choques pareados de preferred times.
// Es un pre-check sobre la lista sin agendar: avisa de colisiones probables
// antes de correr el allocator, pero no impide agendar.
//
// Solo participan tareas con preferred time (sin preferencia no hay choque
// posible por definición). El test de solape es sobre intervalos semiabiertos
// [preferred, preferred+duration): mismo inicio siempre choca; back-to-back
// (una termina justo cuando empieza la otra) no choca.
//
// petNames mapea pet ID -> nombre, solo para el warning legible; un ID sin
// nombre se reporta por ID.
//
// Orden de salida estable: por posición de la primera tarea, luego la segunda.
func DetectConflicts(list []tasks.Task, petNames map[string]string) []Conflict {
	out := make([]Conflict, 0)

	for i := 0; i < len(list); i++ {
		a := list[i]
		if a.PreferredTime == nil {
			continue
		}
		for j := i + 1; j < len(list); j++ {
			b := list[j]
			if b.PreferredTime == nil {
				continue
			}

			aStart, aEnd := *a.PreferredTime, a.PreferredTime.Add(a.DurationMinutes)
			bStart, bEnd := *b.PreferredTime, b.PreferredTime.Add(b.DurationMinutes)
			if aStart >= bEnd || bStart >= aEnd {
				continue
			}

			out = append(out, newConflict(a, b, maxTime(aStart, bStart), minTime(aEnd, bEnd), petNames))
		}
	}

	return out
}

func newConflict(a, b tasks.Task, start, end tasks.TimeOfDay, petNames map[string]string) Conflict {
	c := Conflict{
		FirstTaskID:  a.ID,
		SecondTaskID: b.ID,
		OverlapStart: start,
		OverlapEnd:   end,
	}

	if a.PetID == b.PetID {
		c.Kind = ConflictSamePet
		c.Detail = fmt.Sprintf("critical: %q and %q overlap for %s between %s and %s",
			a.Title, b.Title, petName(petNames, a.PetID), start, end)
	} else {
		c.Kind = ConflictCrossPet
		c.Detail = fmt.Sprintf("heads-up: %q (%s) and %q (%s) overlap between %s and %s",
			a.Title, petName(petNames, a.PetID), b.Title, petName(petNames, b.PetID), start, end)
	}

	return c
}

func petName(names map[string]string, petID string) string {
	if n, ok := names[petID]; ok && n != "" {
		return n
	}
	return petID
}

func minTime(a, b tasks.TimeOfDay) tasks.TimeOfDay {
	if a < b {
		return a
	}
	return b
}

func maxTime(a, b tasks.TimeOfDay) tasks.TimeOfDay {
	if a > b {
		return a
	}
	return b
}
