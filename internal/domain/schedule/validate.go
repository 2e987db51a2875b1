package schedule

import "fmt"

// Validate es la red de seguridad post-hoc: re-chequea que el schedule final
// no tenga solapes same-pet residuales y que todo before/after se respete.
// Solape cross-pet es aceptable en un schedule final (solo la línea de tiempo
// de cada mascota debe estar libre de colisiones).
//
// Reporta, no repara: nunca re-agenda.
func Validate(placements []ScheduledTask) ValidationResult {
	violations := make([]Violation, 0)

	for i := 0; i < len(placements); i++ {
		a := placements[i]
		for j := i + 1; j < len(placements); j++ {
			b := placements[j]
			if a.Task.PetID != b.Task.PetID {
				continue
			}
			// Mismo test semiabierto que el detector de conflictos.
			if a.Start >= b.End() || b.Start >= a.End() {
				continue
			}
			violations = append(violations, Violation{
				Kind:    ViolationSamePetOverlap,
				TaskIDs: []string{a.Task.ID, b.Task.ID},
				Detail: fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s) for the same pet",
					a.Task.Title, a.Start, a.End(), b.Task.Title, b.Start, b.End()),
			})
		}
	}

	for _, p := range placements {
		c := p.Task.Constraint
		if c == nil || c.Allows(p.Start, p.Task.DurationMinutes) {
			continue
		}
		violations = append(violations, Violation{
			Kind:    ViolationConstraintViolated,
			TaskIDs: []string{p.Task.ID},
			Detail: fmt.Sprintf("%q placed at %s violates %q",
				p.Task.Title, p.Start, c.String()),
		})
	}

	return ValidationResult{OK: len(violations) == 0, Violations: violations}
}
