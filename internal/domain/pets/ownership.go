package pets

import "context"

// OwnerOf expone el ownerID de una mascota.
// Lo usan los handlers de tasks/schedule para autorizar sin acoplar módulos.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}
