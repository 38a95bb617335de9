package animaltypes

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultNames son las categorías con las que arranca la clínica (ver cmd/seed).
var DefaultNames = []string{"Кошка", "Собака", "Попугай", "Крокодил"}

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
	Name string
	Slug string // opcional; si viene vacío se deriva del nombre
}

func (s *Service) Create(ctx context.Context, in CreateInput) (AnimalType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return AnimalType{}, ErrInvalidInput
	}

	sl := strings.TrimSpace(in.Slug)
	if sl == "" {
		sl = Slugify(name)
	}
	if sl == "" {
		return AnimalType{}, ErrInvalidInput
	}

	now := s.now()
	return s.repo.Create(ctx, AnimalType{
		Name:      name,
		Slug:      sl,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name     *string
	Slug     *string
	IsActive *bool
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (AnimalType, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AnimalType{}, err
	}

	renamed := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return AnimalType{}, ErrInvalidInput
		}
		renamed = name != current.Name
		current.Name = name
	}

	switch {
	case in.Slug != nil:
		sl := strings.TrimSpace(*in.Slug)
		if sl == "" {
			sl = Slugify(current.Name)
		}
		current.Slug = sl
	case renamed:
		// sin slug explícito, el slug sigue al nombre
		current.Slug = Slugify(current.Name)
	}
	if current.Slug == "" {
		return AnimalType{}, ErrInvalidInput
	}

	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}

	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return AnimalType{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (AnimalType, error) {
	return s.repo.GetByID(ctx, id)
}

// ListActive es lo que ve el bot / cliente público.
func (s *Service) ListActive(ctx context.Context) ([]AnimalType, error) {
	return s.repo.List(ctx, true)
}

// EnsureDefaults crea las categorías que falten; devuelve cuántas creó.
func (s *Service) EnsureDefaults(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		_, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return created, err
		}
		if _, err := s.Create(ctx, CreateInput{Name: name}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
