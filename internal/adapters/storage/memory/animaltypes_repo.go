package memory

import (
	"context"
	"sort"
	"sync"

	"vet-clinic-booking/internal/domain/animaltypes"
)

type animalTypeRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]animaltypes.AnimalType
}

func NewAnimalTypeRepo() animaltypes.Repository {
	return &animalTypeRepo{
		byID: make(map[int64]animaltypes.AnimalType),
	}
}

func (r *animalTypeRepo) Create(ctx context.Context, a animaltypes.AnimalType) (animaltypes.AnimalType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clashes(a) {
		return animaltypes.AnimalType{}, animaltypes.ErrDuplicate
	}

	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

func (r *animalTypeRepo) Update(ctx context.Context, a animaltypes.AnimalType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return animaltypes.ErrNotFound
	}
	if r.clashes(a) {
		return animaltypes.ErrDuplicate
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalTypeRepo) GetByID(ctx context.Context, id int64) (animaltypes.AnimalType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animaltypes.AnimalType{}, animaltypes.ErrNotFound
	}
	return a, nil
}

func (r *animalTypeRepo) GetByName(ctx context.Context, name string) (animaltypes.AnimalType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.Name == name {
			return a, nil
		}
	}
	return animaltypes.AnimalType{}, animaltypes.ErrNotFound
}

func (r *animalTypeRepo) List(ctx context.Context, onlyActive bool) ([]animaltypes.AnimalType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animaltypes.AnimalType, 0, len(r.byID))
	for _, a := range r.byID {
		if onlyActive && !a.IsActive {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// clashes: nombre o slug ya usados por otra categoría (se llama con el lock tomado).
func (r *animalTypeRepo) clashes(a animaltypes.AnimalType) bool {
	for id, cur := range r.byID {
		if id == a.ID {
			continue
		}
		if cur.Name == a.Name || cur.Slug == a.Slug {
			return true
		}
	}
	return false
}
