package schedule

import (
	"errors"
	"fmt"

	"pawpal-planner/internal/domain/tasks"
)

// PlacementReason explica dónde terminó cada tarea y por qué.
type PlacementReason string

const (
	// ReasonPreferredTimeHonored: la tarea quedó exactamente en su preferred time.
	ReasonPreferredTimeHonored PlacementReason = "preferred_time_honored"
	// ReasonMovedDueToConflict: tenía preferred time pero estaba ocupado (o era
	// inutilizable dentro de la ventana); se movió al hueco libre más cercano.
	ReasonMovedDueToConflict PlacementReason = "moved_due_to_conflict"
	// ReasonMovedDueToConstraint: un before/after acotó la búsqueda.
	ReasonMovedDueToConstraint PlacementReason = "moved_due_to_constraint"
	// ReasonScheduled: sin preferencia ni constraint; primer hueco libre.
	ReasonScheduled PlacementReason = "scheduled"
	// ReasonUnplaced: ningún hueco válido en toda la ventana.
	ReasonUnplaced PlacementReason = "unplaced"
)

// ScheduledTask es el resultado de colocar una tarea: hora de inicio alineada
// a slot + motivo. Se crea fresco en cada corrida; el engine nunca lo persiste.
type ScheduledTask struct {
	Task   tasks.Task
	Start  tasks.TimeOfDay
	Reason PlacementReason
}

func (p ScheduledTask) End() tasks.TimeOfDay {
	return p.Start.Add(p.Task.DurationMinutes)
}

type ConflictKind string

const (
	// ConflictSamePet es crítico: una mascota no puede estar en dos
	// actividades a la vez.
	ConflictSamePet ConflictKind = "same_pet"
	// ConflictCrossPet es informativo: dos mascotas a la misma hora puede ser
	// un problema para el dueño, pero el schedule final lo admite.
	ConflictCrossPet ConflictKind = "cross_pet"
)

// Conflict es un choque de preferred times entre dos tareas. Efímero,
// producido por corrida de detección.
type Conflict struct {
	FirstTaskID  string
	SecondTaskID string
	Kind         ConflictKind

	OverlapStart tasks.TimeOfDay
	OverlapEnd   tasks.TimeOfDay

	// Detail es el warning legible para humanos (con nombres de mascotas).
	Detail string
}

// Config parametriza la ventana de scheduling. Ventana y granularidad son
// configuración, no constantes, para poder testear ventanas chicas.
type Config struct {
	WindowStart tasks.TimeOfDay
	WindowEnd   tasks.TimeOfDay

	SlotMinutes           int
	BreakThresholdMinutes int
	BreakMinutes          int
}

// DefaultConfig: 06:00-22:00, slots de 15 min, break de 15 min después de
// tareas de más de 30 min.
func DefaultConfig() Config {
	return Config{
		WindowStart:           tasks.TimeOfDay(6 * 60),
		WindowEnd:             tasks.TimeOfDay(22 * 60),
		SlotMinutes:           15,
		BreakThresholdMinutes: 30,
		BreakMinutes:          15,
	}
}

func (c Config) validate() error {
	if !c.WindowStart.Valid() {
		return fmt.Errorf("window start out of range: %s", c.WindowStart)
	}
	if c.WindowEnd <= c.WindowStart || c.WindowEnd > tasks.MinutesPerDay {
		return fmt.Errorf("window end %s must be after start %s and within the day", c.WindowEnd, c.WindowStart)
	}
	if c.SlotMinutes <= 0 {
		return errors.New("slot minutes must be positive")
	}
	if int(c.WindowEnd-c.WindowStart)%c.SlotMinutes != 0 {
		return fmt.Errorf("window %s-%s is not a whole number of %d-minute slots", c.WindowStart, c.WindowEnd, c.SlotMinutes)
	}
	if c.BreakThresholdMinutes < 0 || c.BreakMinutes < 0 {
		return errors.New("break settings must not be negative")
	}
	return nil
}

func (c Config) slotCount() int {
	return int(c.WindowEnd-c.WindowStart) / c.SlotMinutes
}

// Result es la salida del allocator: colocaciones + tareas que no cupieron.
// Las tareas sin lugar son datos, no errores (éxito parcial esperado bajo carga).
type Result struct {
	Placements []ScheduledTask
	Unplaced   []tasks.Task
}

// DecisionRecord es una entrada del plan explicado: transformación pura de la
// salida del allocator, lista para render (la UI decide el formato final).
type DecisionRecord struct {
	TaskID string
	Title  string
	PetID  string

	// Time es nil cuando la tarea quedó sin colocar.
	Time   *tasks.TimeOfDay
	Reason PlacementReason

	// PreferredTime acompaña a moved_due_to_conflict: la hora pedida que no
	// estaba disponible.
	PreferredTime *tasks.TimeOfDay

	Detail string
}

type ViolationKind string

const (
	ViolationSamePetOverlap     ViolationKind = "same_pet_overlap"
	ViolationConstraintViolated ViolationKind = "constraint_violated"
)

// Violation es un problema encontrado por el validador post-hoc.
type Violation struct {
	Kind    ViolationKind
	TaskIDs []string
	Detail  string
}

// ValidationResult es un veredicto, no un fix: reporta, no re-agenda.
type ValidationResult struct {
	OK         bool
	Violations []Violation
}
