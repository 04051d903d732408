package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mystery-server/internal/mystery"
)

// RedisStore keeps one JSON blob per room key in Redis. When a TTL is
// configured every Set refreshes it, so abandoned rooms age out without
// any server-side bookkeeping.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration // zero means keys never expire
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, roomCode string) (*mystery.GameState, error) {
	data, err := s.client.Get(ctx, roomKey(roomCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("room %s: %w", roomCode, mystery.ErrRoomNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room %s: %w", roomCode, err)
	}

	return decodeState(data)
}

func (s *RedisStore) Set(ctx context.Context, roomCode string, state *mystery.GameState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, roomKey(roomCode), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save room %s: %w", roomCode, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, roomCode string) error {
	if err := s.client.Del(ctx, roomKey(roomCode)).Err(); err != nil {
		return fmt.Errorf("failed to delete room %s: %w", roomCode, err)
	}
	return nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
