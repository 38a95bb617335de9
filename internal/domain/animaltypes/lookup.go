package animaltypes

import (
	"context"
	"errors"
)

// Exists indica si la categoría existe y está activa; una categoría
// desactivada no admite reservas nuevas.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.IsActive, nil
}
