// Package redis guarda los carros de caja en Redis, uno por clave de sesión y con TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.CartStore = (*CartStore)(nil)

// CartStore implementa repository.CartStore sobre go-redis.
// Cada Save renueva el TTL; un carro abandonado expira solo.
type CartStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewClient crea el cliente Redis.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewCartStore construye el almacén. prefix separa los carros de otras claves (ej. "pos-api").
func NewCartStore(client *redis.Client, prefix string, ttl time.Duration) *CartStore {
	return &CartStore{client: client, prefix: prefix, ttl: ttl}
}

// Key devuelve la clave Redis del carro de la sesión.
func (s *CartStore) Key(sessionID string) string {
	return fmt.Sprintf("%s:cart:%s", s.prefix, sessionID)
}

func (s *CartStore) Get(ctx context.Context, sessionID string) (*entity.Cart, error) {
	val, err := s.client.Get(ctx, s.Key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &entity.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w: %w", domain.ErrStorage, err)
	}
	var cart entity.Cart
	if err := json.Unmarshal(val, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	cart.SessionID = sessionID
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, cart *entity.Cart) error {
	if cart.IsEmpty() {
		return s.Delete(ctx, cart.SessionID)
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.Key(cart.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Ping verifica la conexión (usado en /health).
func (s *CartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
