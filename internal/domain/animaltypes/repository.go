package animaltypes

import (
	"context"
	"errors"
)

var (
	// ErrNotFound y ErrDuplicate los devuelven los adapters de storage.
	ErrNotFound  = errors.New("animal type not found")
	ErrDuplicate = errors.New("animal type name or slug already exists")
)

type Repository interface {
	// Create asigna el ID y lo devuelve en la entidad.
	Create(ctx context.Context, a AnimalType) (AnimalType, error)
	Update(ctx context.Context, a AnimalType) error
	GetByID(ctx context.Context, id int64) (AnimalType, error)
	GetByName(ctx context.Context, name string) (AnimalType, error)
	List(ctx context.Context, onlyActive bool) ([]AnimalType, error)
}
