package tasks

import (
	"errors"
	"fmt"
	"strings"
)

// Priority define la urgencia de una tarea.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority valida el valor en el borde (handler/service).
// Un valor desconocido es error de construcción, nunca sorpresa en runtime.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// Rank da el orden para el allocator: high > medium > low.
// 0 significa valor inválido (no pasó por ParsePriority).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Frequency define la recurrencia de una tarea.
// FrequencyNone (zero value) = tarea puntual, sin recurrencia.
type Frequency string

const (
	FrequencyNone     Frequency = ""
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyNone:
		return FrequencyNone, nil
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyBiweekly:
		return FrequencyBiweekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	default:
		return "", fmt.Errorf("unknown frequency %q", s)
	}
}

// TimeOfDay es un instante del día en minutos desde medianoche.
// Lo usamos en vez de time.Time porque el scheduling es intra-día:
// no hay zona horaria ni fecha involucrada.
type TimeOfDay int

const MinutesPerDay = 24 * 60

// ParseTimeOfDay acepta "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return TimeOfDay(hh*60 + mm), nil
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ConstraintKind: before = la tarea debe TERMINAR a más tardar en At;
// after = la tarea debe EMPEZAR en At o después.
type ConstraintKind string

const (
	ConstraintBefore ConstraintKind = "before"
	ConstraintAfter  ConstraintKind = "after"
)

// Constraint es un límite duro de horario. A diferencia del preferred time
// (que es una sugerencia), el allocator nunca lo viola.
type Constraint struct {
	Kind ConstraintKind
	At   TimeOfDay
}

// ParseConstraint acepta el formato de la UI: "before 09:00" / "after 18:00".
// Cadena vacía = sin constraint.
func ParseConstraint(s string) (*Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Fields(s)
	if len(parts) != 2 {
		return nil, errors.New(`constraint must be "before HH:MM" or "after HH:MM"`)
	}

	var kind ConstraintKind
	switch strings.ToLower(parts[0]) {
	case "before":
		kind = ConstraintBefore
	case "after":
		kind = ConstraintAfter
	default:
		return nil, fmt.Errorf("unknown constraint kind %q", parts[0])
	}

	at, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return nil, err
	}

	return &Constraint{Kind: kind, At: at}, nil
}

func (c Constraint) String() string {
	return string(c.Kind) + " " + c.At.String()
}

// Allows reporta si una tarea que empieza en start y dura duration minutos
// respeta el constraint.
func (c Constraint) Allows(start TimeOfDay, durationMinutes int) bool {
	switch c.Kind {
	case ConstraintBefore:
		return start.Add(durationMinutes) <= c.At
	case ConstraintAfter:
		return start >= c.At
	default:
		return false
	}
}
