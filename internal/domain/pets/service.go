package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Preferences map[string]string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	prefs := map[string]string{}
	for k, v := range in.Preferences {
		if strings.TrimSpace(k) == "" {
			continue
		}
		prefs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerID:     strings.TrimSpace(ownerID),
		Name:        strings.TrimSpace(in.Name),
		Species:     NormalizeSpecies(in.Species),
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// SetPreferences reemplaza/agrega claves de preferencias (merge).
// Para borrar una clave se envía valor vacío.
func (s *Service) SetPreferences(ctx context.Context, petID string, prefs map[string]string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	if p.Preferences == nil {
		p.Preferences = map[string]string{}
	}
	for k, v := range prefs {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if strings.TrimSpace(v) == "" {
			delete(p.Preferences, k)
			continue
		}
		p.Preferences[k] = strings.TrimSpace(v)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
