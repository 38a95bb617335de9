package memory

import (
	"context"
	"sync"

	"vet-clinic-booking/internal/domain/clients"
)

type clientRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]clients.Client
	byLogin map[string]int64
}

func NewClientRepo() clients.Repository {
	return &clientRepo{
		byID:    make(map[int64]clients.Client),
		byLogin: make(map[string]int64),
	}
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) (clients.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[c.Login]; taken {
		return clients.Client{}, clients.ErrDuplicateLogin
	}

	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = c
	r.byLogin[c.Login] = c.ID
	return c, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}
