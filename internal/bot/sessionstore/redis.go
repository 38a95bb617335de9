package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"vet-clinic-booking/internal/bot"
)

const redisKeyPrefix = "vetclinic:bot:session:"

// Redis guarda cada sesión como JSON con TTL; cada Save renueva la expiración.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// DialRedis abre el cliente y comprueba la conexión con PING.
func DialRedis(ctx context.Context, addr, password string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(client, ttl), nil
}

func (s *Redis) Get(ctx context.Context, chatID int64) (bot.Session, error) {
	raw, err := s.client.Get(ctx, redisKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return bot.Session{}, bot.ErrSessionNotFound
	}
	if err != nil {
		return bot.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess bot.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return bot.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *Redis) Save(ctx context.Context, sess bot.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(sess.ChatID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, redisKey(chatID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (s *Redis) Close() error {
	return s.client.Close()
}

func redisKey(chatID int64) string {
	return redisKeyPrefix + strconv.FormatInt(chatID, 10)
}
