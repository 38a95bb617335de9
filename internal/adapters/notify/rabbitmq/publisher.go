// Package rabbitmq publica eventos de reservas en una cola durable.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"vet-clinic-booking/internal/domain/appointments"
	"vet-clinic-booking/internal/platform/logger"
)

const EventAppointmentBooked = "appointment.booked"

// channel es el subconjunto de *amqp.Channel que usamos (fake en tests).
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn  *amqp.Connection
	ch    channel
	queue string
	loc   *time.Location
	log   logger.Logger
}

type BookedEvent struct {
	Event           string    `json:"event"`
	AppointmentID   string    `json:"appointment_id"`
	ClientID        int64     `json:"client_id"`
	AnimalTypeID    int64     `json:"animal_type_id"`
	AppointmentDate string    `json:"appointment_date"`
	BookedAt        time.Time `json:"booked_at"`
}

// Dial conecta, abre un canal y declara la cola (durable).
func Dial(url, queue string, loc *time.Location, log logger.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}

	p := newPublisher(ch, queue, loc, log)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string, loc *time.Location, log logger.Logger) *Publisher {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{ch: ch, queue: queue, loc: loc, log: log}
}

func (p *Publisher) AppointmentBooked(ctx context.Context, a appointments.Appointment) error {
	body, err := json.Marshal(BookedEvent{
		Event:           EventAppointmentBooked,
		AppointmentID:   a.ID,
		ClientID:        a.ClientID,
		AnimalTypeID:    a.AnimalTypeID,
		AppointmentDate: appointments.FormatSlot(a.Date, p.loc),
		BookedAt:        a.CreatedAt.UTC(),
	})
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    a.ID,
		Type:         EventAppointmentBooked,
		Timestamp:    a.CreatedAt,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", p.queue, err)
	}

	p.log.Debug("rabbitmq.publish.ok", map[string]any{
		"queue":          p.queue,
		"appointment_id": a.ID,
	})
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
