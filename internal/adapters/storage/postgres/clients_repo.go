package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-booking/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) (clients.Client, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO clients (
			login, first_name, last_name, phone,
			telegram_chat_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		c.Login,
		c.FirstName,
		c.LastName,
		c.Phone,
		toNullString(c.TelegramChatID),
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return clients.Client{}, clients.ErrDuplicateLogin
		}
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, login, first_name, last_name, phone,
			telegram_chat_id, created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id)

	var c clients.Client
	var chatID sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.Login,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&chatID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.Client{}, clients.ErrNotFound
		}
		return clients.Client{}, err
	}
	c.TelegramChatID = chatID.String

	return c, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
