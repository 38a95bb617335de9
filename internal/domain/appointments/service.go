package appointments

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"vet-clinic-booking/internal/platform/logger"
)

// Lookup responde si una entidad existe; lo implementan clients.Service y
// animaltypes.Service (evita imports cruzados entre módulos).
type Lookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Notifier recibe las citas confirmadas (ej. cola RabbitMQ).
type Notifier interface {
	AppointmentBooked(ctx context.Context, a Appointment) error
}

// Observer cuenta resultados de reserva (métricas).
type Observer interface {
	ObserveBooking(outcome string)
}

type nopNotifier struct{}

func (nopNotifier) AppointmentBooked(context.Context, Appointment) error { return nil }

type nopObserver struct{}

func (nopObserver) ObserveBooking(string) {}

type Service struct {
	repo        Repository
	clients     Lookup
	animalTypes Lookup

	loc      *time.Location
	now      func() time.Time
	validate *validator.Validate

	notifier Notifier
	observer Observer
	log      logger.Logger
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo Repository, clients, animalTypes Lookup, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.Local
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	s := &Service{
		repo:        repo,
		clients:     clients,
		animalTypes: animalTypes,
		loc:         loc,
		now:         time.Now,
		validate:    v,
		notifier:    nopNotifier{},
		observer:    nopObserver{},
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Location() *time.Location { return s.loc }

type BookInput struct {
	ClientID        int64  `json:"client" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AnimalTypeID    int64  `json:"animal_type" validate:"required"`
}

// Book es la única vía de alta de citas (API pública y admin).
// Orden de validación: campos, formato, pasado, cliente, categoría, conflicto.
func (s *Service) Book(ctx context.Context, in BookInput) (Appointment, error) {
	a, err := s.book(ctx, in)
	s.observer.ObserveBooking(outcome(err))
	return a, err
}

func (s *Service) book(ctx context.Context, in BookInput) (Appointment, error) {
	in.AppointmentDate = strings.TrimSpace(in.AppointmentDate)
	if err := s.validateInput(in); err != nil {
		return Appointment{}, err
	}

	date, err := ParseSlot(in.AppointmentDate, s.loc)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now()
	if !date.After(now) {
		return Appointment{}, ErrPastDate
	}

	ok, err := s.clients.Exists(ctx, in.ClientID)
	if err != nil {
		return Appointment{}, fmt.Errorf("lookup client: %w", err)
	}
	if !ok {
		return Appointment{}, &NotFoundError{Entity: EntityClient}
	}

	ok, err = s.animalTypes.Exists(ctx, in.AnimalTypeID)
	if err != nil {
		return Appointment{}, fmt.Errorf("lookup animal type: %w", err)
	}
	if !ok {
		return Appointment{}, &NotFoundError{Entity: EntityAnimalType}
	}

	taken, err := s.repo.ExistsActive(ctx, date, in.AnimalTypeID)
	if err != nil {
		return Appointment{}, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return Appointment{}, ErrSlotTaken
	}

	a := Appointment{
		ID:           uuid.NewString(),
		ClientID:     in.ClientID,
		AnimalTypeID: in.AnimalTypeID,
		Date:         date,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// el storage es el respaldo ante dos reservas simultáneas
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Appointment{}, ErrSlotTaken
		}
		return Appointment{}, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info("appointment booked", map[string]any{
		"appointment_id": a.ID,
		"client_id":      a.ClientID,
		"animal_type_id": a.AnimalTypeID,
		"slot":           FormatSlot(a.Date, s.loc),
	})

	if err := s.notifier.AppointmentBooked(ctx, a); err != nil {
		s.log.Warn("booking notification failed", map[string]any{
			"appointment_id": a.ID,
			"err":            err,
		})
	}

	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List (admin) devuelve las citas con fecha en [from, to).
func (s *Service) List(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	return s.repo.List(ctx, from, to)
}

// Deactivate libera el slot; la cita no se borra.
func (s *Service) Deactivate(ctx context.Context, id string) (Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Appointment{}, ErrNotFound
	}
	return s.repo.Deactivate(ctx, id, s.now())
}

func (s *Service) validateInput(in BookInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: map[string][]string{}}
	for _, fe := range verrs {
		ve.Fields[fe.Field()] = append(ve.Fields[fe.Field()], "Обязательное поле.")
	}
	return ve
}

func outcome(err error) string {
	if err == nil {
		return "booked"
	}
	if code, _, ok := Describe(err); ok {
		return code
	}
	return "error"
}
