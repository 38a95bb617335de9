package clients

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const maxTokenAttempts = 5

// mensajes que ve el usuario final (el bot los reenvía tal cual)
var fieldMessages = map[string]string{
	"required": "Обязательное поле.",
	"e164":     "Введите корректный номер телефона.",
	"number":   "Допускаются только цифры.",
	"alphanum": "Допускаются только латинские буквы и цифры.",
	"min":      "Слишком короткое значение.",
	"max":      "Слишком длинное значение.",
}

const msgLoginTaken = "Пользователь с таким логином уже существует."

type Service struct {
	repo     Repository
	now      func() time.Time
	newToken func() (string, error)
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		repo:     repo,
		now:      time.Now,
		newToken: GenerateToken,
		validate: v,
	}
}

type RegisterInput struct {
	FirstName      string `json:"first_name" validate:"required,max=150"`
	LastName       string `json:"last_name" validate:"required,max=150"`
	Phone          string `json:"phone" validate:"required,e164"`
	TelegramChatID string `json:"telegram_chat_id" validate:"omitempty,number,max=32"`
	Login          string `json:"login" validate:"omitempty,alphanum,min=3,max=150"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Client, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = NormalizePhone(in.Phone)
	in.TelegramChatID = strings.TrimSpace(in.TelegramChatID)
	in.Login = strings.TrimSpace(in.Login)

	if err := s.validateInput(in); err != nil {
		return Client{}, err
	}

	now := s.now()
	c := Client{
		Login:          in.Login,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		TelegramChatID: in.TelegramChatID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if c.Login != "" {
		created, err := s.repo.Create(ctx, c)
		if errors.Is(err, ErrDuplicateLogin) {
			ve := &ValidationError{}
			ve.add("login", msgLoginTaken)
			return Client{}, ve
		}
		return created, err
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := s.newToken()
		if err != nil {
			return Client{}, fmt.Errorf("generate login: %w", err)
		}
		c.Login = token

		created, err := s.repo.Create(ctx, c)
		if errors.Is(err, ErrDuplicateLogin) {
			continue
		}
		return created, err
	}
	return Client{}, ErrLoginExhausted
}

func (s *Service) GetByID(ctx context.Context, id int64) (Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) validateInput(in RegisterInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение."
		}
		ve.add(fe.Field(), msg)
	}
	return ve
}

// NormalizePhone quita espacios, guiones y paréntesis; a un número de solo
// dígitos le antepone '+'.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if strings.ContainsRune(" -().", r) {
			continue
		}
		b.WriteRune(r)
	}

	out := b.String()
	if out != "" && out[0] != '+' {
		out = "+" + out
	}
	return out
}
