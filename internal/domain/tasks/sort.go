package tasks

import "sort"

// SortForDisplay devuelve una copia ordenada: prioridad desc, luego preferred
// time asc (las tareas sin preferencia van al final), luego título.
//
// Es un paso explícito que invoca la capa de presentación antes de mostrar o
// de pasar tareas al allocator; nunca un efecto colateral de insertar.
func SortForDisplay(list []Task) []Task {
	out := make([]Task, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		switch {
		case a.PreferredTime != nil && b.PreferredTime != nil:
			if *a.PreferredTime != *b.PreferredTime {
				return *a.PreferredTime < *b.PreferredTime
			}
		case a.PreferredTime != nil:
			return true
		case b.PreferredTime != nil:
			return false
		}
		return a.Title < b.Title
	})

	return out
}
