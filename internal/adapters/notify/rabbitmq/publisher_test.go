package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-booking/internal/domain/appointments"
)

type fakeChannel struct {
	queue string
	msgs  []amqp.Publishing
	err   error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.queue = key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestPublisher_AppointmentBooked(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	ch := &fakeChannel{}
	p := newPublisher(ch, "appointments.booked", loc, nil)

	a := appointments.Appointment{
		ID:           "0b9b1f5e-7c43-4f0e-9a39-0d3c1b2d9c11",
		ClientID:     1,
		AnimalTypeID: 2,
		Date:         time.Date(2030, 3, 25, 10, 0, 0, 0, loc),
		CreatedAt:    time.Date(2030, 3, 20, 12, 0, 0, 0, loc),
	}
	require.NoError(t, p.AppointmentBooked(context.Background(), a))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "appointments.booked", ch.queue)
	assert.Equal(t, amqp.Persistent, ch.msgs[0].DeliveryMode)

	var ev BookedEvent
	require.NoError(t, json.Unmarshal(ch.msgs[0].Body, &ev))
	assert.Equal(t, EventAppointmentBooked, ev.Event)
	assert.Equal(t, "25.03.2030 10:00", ev.AppointmentDate)
	assert.Equal(t, int64(2), ev.AnimalTypeID)
}

func TestPublisher_WrapsPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := newPublisher(&fakeChannel{err: boom}, "q", time.UTC, nil)

	err := p.AppointmentBooked(context.Background(), appointments.Appointment{ID: "x"})
	assert.ErrorIs(t, err, boom)
}
