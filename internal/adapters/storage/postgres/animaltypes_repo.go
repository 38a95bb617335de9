package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-booking/internal/domain/animaltypes"
)

type AnimalTypesRepo struct {
	db *sql.DB
}

func NewAnimalTypesRepo(db *sql.DB) *AnimalTypesRepo {
	return &AnimalTypesRepo{db: db}
}

const animalTypeColumns = `id, name, slug, is_active, created_at, updated_at`

func (r *AnimalTypesRepo) Create(ctx context.Context, a animaltypes.AnimalType) (animaltypes.AnimalType, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO animal_types (name, slug, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`,
		a.Name,
		a.Slug,
		a.IsActive,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return animaltypes.AnimalType{}, animaltypes.ErrDuplicate
		}
		return animaltypes.AnimalType{}, err
	}
	return a, nil
}

func (r *AnimalTypesRepo) Update(ctx context.Context, a animaltypes.AnimalType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_types
		SET
			name = $2,
			slug = $3,
			is_active = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Slug,
		a.IsActive,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return animaltypes.ErrDuplicate
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animaltypes.ErrNotFound
	}
	return nil
}

func (r *AnimalTypesRepo) GetByID(ctx context.Context, id int64) (animaltypes.AnimalType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalTypeColumns+` FROM animal_types WHERE id = $1`, id)
	return scanAnimalType(row)
}

func (r *AnimalTypesRepo) GetByName(ctx context.Context, name string) (animaltypes.AnimalType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalTypeColumns+` FROM animal_types WHERE name = $1`, name)
	return scanAnimalType(row)
}

func (r *AnimalTypesRepo) List(ctx context.Context, onlyActive bool) ([]animaltypes.AnimalType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalTypeColumns+`
		FROM animal_types
		WHERE ($1 = false OR is_active)
		ORDER BY id ASC
	`, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animaltypes.AnimalType, 0)
	for rows.Next() {
		a, err := scanAnimalType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// scanner cubre *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAnimalType(s scanner) (animaltypes.AnimalType, error) {
	var a animaltypes.AnimalType
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Slug,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animaltypes.AnimalType{}, animaltypes.ErrNotFound
		}
		return animaltypes.AnimalType{}, err
	}
	return a, nil
}
