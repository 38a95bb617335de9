package sessionstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-booking/internal/bot"
)

func sampleSession() bot.Session {
	return bot.Session{
		ChatID:         4242,
		State:          bot.StateAwaitingSlot,
		FirstName:      "Иван",
		LastName:       "Петров",
		Phone:          "+79991234567",
		ClientID:       7,
		AnimalTypeID:   2,
		AnimalTypeName: "Собака",
		UpdatedAt:      time.Date(2030, 3, 20, 9, 0, 0, 0, time.UTC),
	}
}

// roundTrip cubre el contrato común de los tres almacenes.
func roundTrip(t *testing.T, store bot.SessionStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, 4242)
	require.ErrorIs(t, err, bot.ErrSessionNotFound)

	want := sampleSession()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, 4242)
	require.NoError(t, err)
	assert.Equal(t, want.State, got.State)
	assert.Equal(t, want.ClientID, got.ClientID)
	assert.Equal(t, want.AnimalTypeName, got.AnimalTypeName)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	want.State = bot.StateDone
	require.NoError(t, store.Save(ctx, want))
	got, err = store.Get(ctx, 4242)
	require.NoError(t, err)
	assert.Equal(t, bot.StateDone, got.State)

	require.NoError(t, store.Delete(ctx, 4242))
	_, err = store.Get(ctx, 4242)
	assert.ErrorIs(t, err, bot.ErrSessionNotFound)

	// borrar lo inexistente no es error
	assert.NoError(t, store.Delete(ctx, 4242))
}

func TestMemory_RoundTrip(t *testing.T) {
	roundTrip(t, NewMemory(0))
}

func TestMemory_Expires(t *testing.T) {
	store := NewMemory(time.Hour)
	base := time.Date(2030, 3, 20, 9, 0, 0, 0, time.UTC)

	sess := sampleSession()
	sess.UpdatedAt = base
	require.NoError(t, store.Save(context.Background(), sess))

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err := store.Get(context.Background(), sess.ChatID)
	assert.ErrorIs(t, err, bot.ErrSessionNotFound)
}

func TestRedis_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	roundTrip(t, NewRedis(client, 24*time.Hour))
}

func TestRedis_SaveSetsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedis(client, 24*time.Hour)
	require.NoError(t, store.Save(context.Background(), sampleSession()))

	assert.Equal(t, 24*time.Hour, mr.TTL(redisKey(4242)))

	mr.FastForward(25 * time.Hour)
	_, err := store.Get(context.Background(), 4242)
	assert.ErrorIs(t, err, bot.ErrSessionNotFound)
}

func TestDialRedis_FailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := DialRedis(context.Background(), addr, "", time.Hour)
	assert.Error(t, err)
}

func TestSQLite_RoundTrip(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	roundTrip(t, store)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	store, err := OpenSQLite(path, 0)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleSession()))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(context.Background(), 4242)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ClientID)
}

func TestSQLite_Expires(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	base := time.Date(2030, 3, 20, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	require.NoError(t, store.Save(context.Background(), sampleSession()))

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = store.Get(context.Background(), 4242)
	assert.ErrorIs(t, err, bot.ErrSessionNotFound)
}
