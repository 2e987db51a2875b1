package pets

import (
	"strings"
	"time"
)

// Species define las especies soportadas.
// Texto libre se acepta y se normaliza a "other".
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesBird  Species = "bird"
	SpeciesOther Species = "other"
)

func NormalizeSpecies(s string) Species {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog
	case SpeciesCat:
		return SpeciesCat
	case SpeciesBird:
		return SpeciesBird
	default:
		return SpeciesOther
	}
}

// Pet representa una mascota registrada por un dueño.
// Preferences es un mapa libre (ej. "walk_time" -> "evening") que la UI usa
// como hint al crear tareas; el engine no lo interpreta.
type Pet struct {
	ID      string
	OwnerID string

	Name        string
	Species     Species
	Preferences map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}
