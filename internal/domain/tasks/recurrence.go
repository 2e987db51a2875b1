package tasks

import (
	"fmt"
	"time"
)

// NextOccurrenceDate calcula la próxima fecha de una tarea recurrente.
// Función pura y determinista: mismo (date, frequency) => misma salida.
//
// Monthly avanza un mes y recorta el día al último día válido del mes
// destino (Jan 31 -> Feb 28/29). Diciembre -> enero incrementa el año.
func NextOccurrenceDate(date time.Time, freq Frequency) (time.Time, error) {
	switch freq {
	case FrequencyDaily:
		return date.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case FrequencyBiweekly:
		return date.AddDate(0, 0, 14), nil
	case FrequencyMonthly:
		return nextMonthClamped(date), nil
	default:
		// FrequencyNone incluido: una tarea sin recurrencia no tiene
		// "próxima ocurrencia".
		return time.Time{}, fmt.Errorf("no next occurrence for frequency %q", freq)
	}
}

func nextMonthClamped(date time.Time) time.Time {
	y, m, d := date.Date()
	hh, mm, ss := date.Clock()

	// Día 0 del mes m+2 = último día del mes m+1 (time.Date normaliza).
	lastDay := time.Date(y, m+2, 0, 0, 0, 0, 0, date.Location()).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(y, m+1, d, hh, mm, ss, date.Nanosecond(), date.Location())
}
