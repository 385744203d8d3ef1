// Package idempotency guarda en Redis las respuestas de requests con Idempotency-Key
// para repetirlas en reintentos sin volver a ejecutar la operación.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "idem:"
	pending   = "pending"
)

// ErrInProgress la misma llave tiene un request en curso.
var ErrInProgress = errors.New("idempotency: request en curso con la misma llave")

// Record respuesta almacenada para una llave completada.
type Record struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store llaves de idempotencia sobre Redis (SET NX con TTL).
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore construye el store. ttl es la vida de cada llave.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// NewClient crea el cliente desde una URL redis:// y verifica la conexión.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("idempotency: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("idempotency: ping: %w", err)
	}
	return client, nil
}

func redisKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}

// Reserve toma la llave para el request actual.
// Devuelve (nil, nil) si quedó reservada, el Record si ya se completó,
// o ErrInProgress si otro request la tiene reservada.
func (s *Store) Reserve(ctx context.Context, scope, key string) (*Record, error) {
	k := redisKey(scope, key)
	ok, err := s.client.SetNX(ctx, k, pending, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("idempotency: reservar: %w", err)
	}
	if ok {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expiró entre SETNX y GET: reintentar una vez.
		return s.Reserve(ctx, scope, key)
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency: leer: %w", err)
	}
	if string(raw) == pending {
		return nil, ErrInProgress
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("idempotency: decodificar: %w", err)
	}
	return &rec, nil
}

// Complete guarda la respuesta de la llave reservada.
func (s *Store) Complete(ctx context.Context, scope, key string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("idempotency: codificar: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(scope, key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency: guardar: %w", err)
	}
	return nil
}

// Release libera la llave tras un request fallido para permitir reintentos.
func (s *Store) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency: liberar: %w", err)
	}
	return nil
}
