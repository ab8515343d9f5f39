package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss возвращается, когда ключ отсутствует в кеше
	ErrCacheMiss = errors.New("schedule.cache: cache miss")

	// ErrCacheUnavailable возвращается при ошибках соединения с Redis
	ErrCacheUnavailable = errors.New("schedule.cache: cache unavailable")
)

// Cache кеш расписаний поверх Redis.
// Сервисы используют его в режиме read-through: промах или ошибка кеша
// никогда не блокируют запрос, данные читаются из БД.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш поверх подключения к Redis
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// AvailabilityKey ключ еженедельного расписания ситтера
func AvailabilityKey(sitterID int64) string {
	return fmt.Sprintf("schedule:availability:%d", sitterID)
}

// UnavailabilityKey ключ календаря недоступности ситтера
func UnavailabilityKey(sitterID int64) string {
	return fmt.Sprintf("schedule:unavailability:%d", sitterID)
}

// BoardingKey ключ дат передержки ситтера
func BoardingKey(sitterID int64) string {
	return fmt.Sprintf("schedule:boarding:%d", sitterID)
}

// Get читает значение по ключу и десериализует его в dest
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("%w: Get - %v", ErrCacheUnavailable, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		// Битую запись выкидываем, чтобы следующий запрос перезаписал её из БД
		c.client.Del(ctx, key)
		return ErrCacheMiss
	}

	return nil
}

// Set сериализует значение и сохраняет его с TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal value: %v", ErrCacheUnavailable, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate удаляет ключи после записи в БД
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCacheUnavailable, err)
	}

	return nil
}
