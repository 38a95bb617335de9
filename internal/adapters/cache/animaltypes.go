// Package cache decora repos de solo-lectura frecuente con un LRU con TTL.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"vet-clinic-booking/internal/domain/animaltypes"
	"vet-clinic-booking/internal/platform/logger"
)

// AnimalTypes cachea GetByID y List; cualquier escritura purga todo
// (son pocas categorías y cambian muy rara vez).
type AnimalTypes struct {
	next  animaltypes.Repository
	byID  *expirable.LRU[int64, animaltypes.AnimalType]
	lists *expirable.LRU[bool, []animaltypes.AnimalType]
	log   logger.Logger
}

func NewAnimalTypes(next animaltypes.Repository, size int, ttl time.Duration, log logger.Logger) *AnimalTypes {
	if size <= 0 {
		size = 128
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AnimalTypes{
		next:  next,
		byID:  expirable.NewLRU[int64, animaltypes.AnimalType](size, nil, ttl),
		lists: expirable.NewLRU[bool, []animaltypes.AnimalType](2, nil, ttl),
		log:   log,
	}
}

func (c *AnimalTypes) Create(ctx context.Context, a animaltypes.AnimalType) (animaltypes.AnimalType, error) {
	created, err := c.next.Create(ctx, a)
	if err == nil {
		c.purge()
	}
	return created, err
}

func (c *AnimalTypes) Update(ctx context.Context, a animaltypes.AnimalType) error {
	err := c.next.Update(ctx, a)
	if err == nil {
		c.purge()
	}
	return err
}

func (c *AnimalTypes) GetByID(ctx context.Context, id int64) (animaltypes.AnimalType, error) {
	if a, ok := c.byID.Get(id); ok {
		return a, nil
	}
	c.log.Debug("cache.animal_types.get.miss", map[string]any{"id": id})

	a, err := c.next.GetByID(ctx, id)
	if err != nil {
		return animaltypes.AnimalType{}, err
	}
	c.byID.Add(id, a)
	return a, nil
}

func (c *AnimalTypes) GetByName(ctx context.Context, name string) (animaltypes.AnimalType, error) {
	return c.next.GetByName(ctx, name)
}

func (c *AnimalTypes) List(ctx context.Context, onlyActive bool) ([]animaltypes.AnimalType, error) {
	if items, ok := c.lists.Get(onlyActive); ok {
		return clone(items), nil
	}
	c.log.Debug("cache.animal_types.list.miss", map[string]any{"only_active": onlyActive})

	items, err := c.next.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	c.lists.Add(onlyActive, clone(items))
	return items, nil
}

func (c *AnimalTypes) purge() {
	c.byID.Purge()
	c.lists.Purge()
}

func clone(in []animaltypes.AnimalType) []animaltypes.AnimalType {
	out := make([]animaltypes.AnimalType, len(in))
	copy(out, in)
	return out
}
