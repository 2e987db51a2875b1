package owners

import "time"

// Owner es el dueño de las mascotas. El scoping por dueño viene en el header
// X-Owner-ID (modo single-user, sin auth real).
type Owner struct {
	ID   string
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}
