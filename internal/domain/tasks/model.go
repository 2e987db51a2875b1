package tasks

import "time"

// Task representa una tarea de cuidado para una mascota.
// El engine de scheduling la consume tal cual; nunca la muta ni la persiste.
type Task struct {
	ID    string
	PetID string

	// OwnerID va denormalizado para poder listar por dueño sin join
	// (mismo patrón que OwnerID en pets).
	OwnerID string

	Title           string
	DurationMinutes int
	Priority        Priority

	// PreferredTime es una sugerencia blanda; Constraint es un límite duro.
	// Pueden coexistir.
	PreferredTime *TimeOfDay
	Constraint    *Constraint

	Completed bool

	// Recurrencia: Frequency != FrequencyNone exige Date concreta.
	// Date también puede existir en tareas puntuales (opcional).
	Frequency Frequency
	Date      *time.Time

	// ParentTaskID enlaza una ocurrencia generada con la tarea que la originó.
	ParentTaskID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone devuelve una copia sin aliasing de punteros, para sintetizar
// ocurrencias sin compartir estado con la tarea original.
func (t Task) Clone() Task {
	out := t
	if t.PreferredTime != nil {
		v := *t.PreferredTime
		out.PreferredTime = &v
	}
	if t.Constraint != nil {
		v := *t.Constraint
		out.Constraint = &v
	}
	if t.Date != nil {
		v := *t.Date
		out.Date = &v
	}
	return out
}
