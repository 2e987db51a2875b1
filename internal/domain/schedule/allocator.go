package schedule

import (
	"fmt"
	"sort"

	"pawpal-planner/internal/domain/tasks"
)

// Generate corre el allocator greedy sobre un bitmap de ocupación por slots.
//
// El bitmap se crea fresco en cada llamada y se descarta al final: el engine
// no guarda estado entre corridas, y llamadas concurrentes con inputs
// disjuntos son seguras.
//
// Determinista: misma lista + misma config => mismas colocaciones. El orden
// de entrada actúa como desempate (sort estable).
func Generate(list []tasks.Task, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := validateTasks(list); err != nil {
		return Result{}, err
	}

	occupied := make([]bool, cfg.slotCount())

	// Prioridad desc; a igual prioridad, duración desc (las tareas largas
	// eligen primero para reducir fragmentación).
	sorted := make([]tasks.Task, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority.Rank() != sorted[j].Priority.Rank() {
			return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
		}
		return sorted[i].DurationMinutes > sorted[j].DurationMinutes
	})

	res := Result{
		Placements: make([]ScheduledTask, 0, len(sorted)),
		Unplaced:   make([]tasks.Task, 0),
	}

	for i, t := range sorted {
		runLen := (t.DurationMinutes + cfg.SlotMinutes - 1) / cfg.SlotMinutes

		slot, reason := place(t, cfg, occupied, runLen)
		if slot < 0 {
			res.Unplaced = append(res.Unplaced, t)
			continue
		}

		for s := slot; s < slot+runLen; s++ {
			occupied[s] = true
		}

		res.Placements = append(res.Placements, ScheduledTask{
			Task:   t,
			Start:  cfg.WindowStart.Add(slot * cfg.SlotMinutes),
			Reason: reason,
		})

		// Break obligatorio (best effort) después de tareas largas, solo si
		// queda alguna tarea por colocar. Si el hueco no está libre, seguimos
		// sin break: nunca bloquea una colocación.
		if t.DurationMinutes > cfg.BreakThresholdMinutes && i < len(sorted)-1 {
			reserveBreak(cfg, occupied, slot+runLen)
		}
	}

	return res, nil
}

// validateTasks es la única condición fatal del engine: input malformado que
// viola invariantes del modelo. Todo lo demás (sin hueco, preferido ocupado,
// break imposible) se resuelve con fallback y se registra, nunca es error.
func validateTasks(list []tasks.Task) error {
	for _, t := range list {
		if t.DurationMinutes <= 0 {
			return fmt.Errorf("task %s (%q): duration must be positive, got %d", t.ID, t.Title, t.DurationMinutes)
		}
		if t.Priority.Rank() == 0 {
			return fmt.Errorf("task %s (%q): unknown priority %q", t.ID, t.Title, t.Priority)
		}
		if t.PreferredTime != nil && !t.PreferredTime.Valid() {
			return fmt.Errorf("task %s (%q): preferred time out of range", t.ID, t.Title)
		}
		if t.Constraint != nil {
			if t.Constraint.Kind != tasks.ConstraintBefore && t.Constraint.Kind != tasks.ConstraintAfter {
				return fmt.Errorf("task %s (%q): unknown constraint kind %q", t.ID, t.Title, t.Constraint.Kind)
			}
			if !t.Constraint.At.Valid() {
				return fmt.Errorf("task %s (%q): constraint time out of range", t.ID, t.Title)
			}
		}
		if t.Frequency != tasks.FrequencyNone && t.Date == nil {
			return fmt.Errorf("task %s (%q): recurring task without a date", t.ID, t.Title)
		}
	}
	return nil
}

// place devuelve el slot inicial elegido y el motivo, o (-1, unplaced).
func place(t tasks.Task, cfg Config, occupied []bool, runLen int) (int, PlacementReason) {
	// 1) Intento exacto en el preferred time.
	prefSlot, prefExact := preferredSlot(t, cfg)
	if prefExact && runFree(occupied, prefSlot, runLen) && allowed(t, cfg, prefSlot) {
		return prefSlot, ReasonPreferredTimeHonored
	}

	// 2) Barrido hacia afuera desde el preferred time (o desde el inicio de
	// la ventana si no hay): el hueco libre más cercano en tiempo; a igual
	// distancia gana el slot más temprano.
	origin := 0
	if prefSlot >= 0 {
		origin = prefSlot
	}

	maxSlot := len(occupied) - runLen
	for dist := 0; dist < len(occupied); dist++ {
		cands := []int{origin - dist, origin + dist}
		if dist == 0 {
			cands = cands[:1]
		}
		for _, cand := range cands {
			if cand < 0 || cand > maxSlot {
				continue
			}
			if runFree(occupied, cand, runLen) && allowed(t, cfg, cand) {
				return cand, moveReason(t, cfg, occupied, runLen, prefSlot, prefExact)
			}
		}
	}

	return -1, ReasonUnplaced
}

// preferredSlot mapea el preferred time a un índice de slot. exact indica que
// la hora cae dentro de la ventana y alineada a slot (colocable tal cual);
// si no, el índice (recortado a la ventana) sirve solo como origen del barrido.
func preferredSlot(t tasks.Task, cfg Config) (slot int, exact bool) {
	if t.PreferredTime == nil {
		return -1, false
	}

	pref := *t.PreferredTime
	if pref < cfg.WindowStart {
		return 0, false
	}
	if pref >= cfg.WindowEnd {
		return cfg.slotCount() - 1, false
	}

	offset := int(pref - cfg.WindowStart)
	return offset / cfg.SlotMinutes, offset%cfg.SlotMinutes == 0
}

func runFree(occupied []bool, start, runLen int) bool {
	if start < 0 || start+runLen > len(occupied) {
		return false
	}
	for s := start; s < start+runLen; s++ {
		if occupied[s] {
			return false
		}
	}
	return true
}

// allowed chequea el hard constraint contra la duración real de la tarea
// (no contra el run redondeado: el redondeo es un artefacto de asignación).
func allowed(t tasks.Task, cfg Config, slot int) bool {
	if t.Constraint == nil {
		return true
	}
	start := cfg.WindowStart.Add(slot * cfg.SlotMinutes)
	return t.Constraint.Allows(start, t.DurationMinutes)
}

// moveReason clasifica por qué la tarea no quedó en su lugar "natural".
func moveReason(t tasks.Task, cfg Config, occupied []bool, runLen, prefSlot int, prefExact bool) PlacementReason {
	if t.PreferredTime != nil {
		// Preferido colocable pero ocupado => conflicto. Preferido libre pero
		// vetado por constraint => constraint. Preferido inutilizable (fuera
		// de ventana o desalineado) => lo tratamos como conflicto, salvo que
		// haya constraint de por medio.
		if prefExact && !runFree(occupied, prefSlot, runLen) {
			return ReasonMovedDueToConflict
		}
		if t.Constraint != nil {
			return ReasonMovedDueToConstraint
		}
		return ReasonMovedDueToConflict
	}
	if t.Constraint != nil {
		return ReasonMovedDueToConstraint
	}
	return ReasonScheduled
}

func reserveBreak(cfg Config, occupied []bool, start int) {
	if cfg.BreakMinutes <= 0 {
		return
	}
	breakLen := (cfg.BreakMinutes + cfg.SlotMinutes - 1) / cfg.SlotMinutes
	if !runFree(occupied, start, breakLen) {
		return
	}
	for s := start; s < start+breakLen; s++ {
		occupied[s] = true
	}
}
