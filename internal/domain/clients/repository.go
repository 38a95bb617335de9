package clients

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("client not found")
	ErrDuplicateLogin = errors.New("client login already exists")
)

type Repository interface {
	// Create asigna el ID. Devuelve ErrDuplicateLogin si el login ya existe.
	Create(ctx context.Context, c Client) (Client, error)
	GetByID(ctx context.Context, id int64) (Client, error)
}
