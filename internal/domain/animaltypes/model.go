package animaltypes

import "time"

// AnimalType es una categoría de animal que atiende la clínica (perro, gato, ...).
type AnimalType struct {
	ID   int64
	Name string
	Slug string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
