package bot

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"vet-clinic-booking/internal/platform/httpclient"
)

// API es lo que el bot necesita de la API REST de la clínica.
type API interface {
	Register(ctx context.Context, in RegisterRequest) (RegisteredClient, error)
	AnimalTypes(ctx context.Context) ([]AnimalType, error)
	FreeSlots(ctx context.Context) ([]string, error)
	Book(ctx context.Context, in BookRequest) (string, error)
}

type RegisterRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	TelegramChatID string `json:"telegram_chat_id"`
}

type RegisteredClient struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type AnimalType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookRequest struct {
	ClientID        int64  `json:"client"`
	AppointmentDate string `json:"appointment_date"`
	AnimalTypeID    int64  `json:"animal_type"`
}

// RejectedError es un 4xx de la API: la petición es inválida y el mensaje es apto para el usuario.
type RejectedError struct {
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Code == "" {
		return "api rejected request: " + e.Message
	}
	return "api rejected request: " + e.Code + ": " + e.Message
}

// AsRejected devuelve el rechazo de la API si err lo contiene.
func AsRejected(err error) (*RejectedError, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

type HTTPAPI struct {
	c *httpclient.Client
}

func NewHTTPAPI(c *httpclient.Client) *HTTPAPI {
	return &HTTPAPI{c: c}
}

func (a *HTTPAPI) Register(ctx context.Context, in RegisterRequest) (RegisteredClient, error) {
	var out RegisteredClient
	err := a.c.DoJSON(ctx, http.MethodPost, "/register", in, &out)
	if err != nil {
		return RegisteredClient{}, rejectedFromFields(err)
	}
	return out, nil
}

func (a *HTTPAPI) AnimalTypes(ctx context.Context) ([]AnimalType, error) {
	var out []AnimalType
	if err := a.c.DoJSON(ctx, http.MethodGet, "/animal-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAPI) FreeSlots(ctx context.Context) ([]string, error) {
	var out []string
	if err := a.c.DoJSON(ctx, http.MethodGet, "/free-slots", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAPI) Book(ctx context.Context, in BookRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := a.c.DoJSON(ctx, http.MethodPost, "/make-an-appointment", in, &out)
	if err == nil {
		return out.Message, nil
	}

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) || !httpErr.ClientError() {
		return "", err
	}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if decErr := httpErr.Decode(&body); decErr != nil || body.Message == "" {
		return "", &RejectedError{Message: msgBookingFailed}
	}
	return "", &RejectedError{Code: body.Code, Message: body.Message}
}

// rejectedFromFields convierte el mapa campo → mensajes de /register en un único texto.
func rejectedFromFields(err error) error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) || !httpErr.ClientError() {
		return err
	}

	var fields map[string][]string
	if decErr := httpErr.Decode(&fields); decErr != nil || len(fields) == 0 {
		return &RejectedError{Code: "validation_error", Message: msgRegistrationFailed}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, fields[k]...)
	}
	return &RejectedError{Code: "validation_error", Message: strings.Join(parts, "\n")}
}
