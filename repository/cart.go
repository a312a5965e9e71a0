package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
)

const DefaultCartTTL = 30 * 24 * time.Hour

// CartRepository stores cart lines per user.
type CartRepository interface {
	List(ctx context.Context, userID string) ([]models.CartRecord, error)
	// Add puts quantity of a product in the cart, merging with an existing line.
	Add(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, error)
	SetQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, error)
	Remove(ctx context.Context, userID string, productID int) error
	Clear(ctx context.Context, userID string) error
	// Changes signals every later write to the user's cart until ctx ends.
	Changes(ctx context.Context, userID string) (<-chan struct{}, error)
}

// RedisCartRepository keeps one hash per user, product id to JSON line, and
// announces writes on a per-user pub/sub channel.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisCartRepository{client: client, ttl: ttl}
}

func CartKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

func CartEventsChannel(userID string) string {
	return fmt.Sprintf("cart:events:%s", userID)
}

func (r *RedisCartRepository) List(ctx context.Context, userID string) ([]models.CartRecord, error) {
	fields, err := r.client.HGetAll(ctx, CartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	records := make([]models.CartRecord, 0, len(fields))
	for field, raw := range fields {
		var rec models.CartRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode cart line %s: %w", field, err)
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ProductID < records[j].ProductID })
	return records, nil
}

func (r *RedisCartRepository) Add(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, error) {
	var saved models.CartRecord
	err := r.update(ctx, userID, productID, func(existing *models.CartRecord) (*models.CartRecord, error) {
		if existing == nil {
			existing = &models.CartRecord{ID: uuid.NewString(), UserID: userID, ProductID: productID}
		}
		existing.Quantity += quantity
		saved = *existing
		return existing, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *RedisCartRepository) SetQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, error) {
	var saved models.CartRecord
	err := r.update(ctx, userID, productID, func(existing *models.CartRecord) (*models.CartRecord, error) {
		if existing == nil {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("product %d is not in the cart", productID))
		}
		existing.Quantity = quantity
		saved = *existing
		return existing, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Remove deletes a line and announces it. A missing line is NotFound and
// publishes nothing.
func (r *RedisCartRepository) Remove(ctx context.Context, userID string, productID int) error {
	key := CartKey(userID)
	field := strconv.Itoa(productID)
	return r.watch(ctx, key, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, key, field).Result()
		if err != nil {
			return fmt.Errorf("remove cart line: %w", err)
		}
		if !exists {
			return apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("product %d is not in the cart", productID))
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, key, field)
			pipe.Publish(ctx, CartEventsChannel(userID), "removed")
			return nil
		})
		return err
	})
}

func (r *RedisCartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, CartKey(userID))
		pipe.Publish(ctx, CartEventsChannel(userID), "cleared")
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *RedisCartRepository) Changes(ctx context.Context, userID string) (<-chan struct{}, error) {
	sub := r.client.Subscribe(ctx, CartEventsChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe to cart changes: %w", err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// coalesce bursts: one pending signal is enough to trigger a reload
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	}()
	return changes, nil
}

// update applies fn to the stored line for productID under WATCH, so
// concurrent writers to the same cart retry instead of losing quantities.
func (r *RedisCartRepository) update(ctx context.Context, userID string, productID int, fn func(*models.CartRecord) (*models.CartRecord, error)) error {
	key := CartKey(userID)
	field := strconv.Itoa(productID)

	txf := func(tx *redis.Tx) error {
		var existing *models.CartRecord
		raw, err := tx.HGet(ctx, key, field).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			existing = &models.CartRecord{}
			if err := json.Unmarshal(raw, existing); err != nil {
				return fmt.Errorf("decode cart line %s: %w", field, err)
			}
		}

		next, err := fn(existing)
		if err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field, data)
			pipe.Expire(ctx, key, r.ttl)
			pipe.Publish(ctx, CartEventsChannel(userID), "updated")
			return nil
		})
		return err
	}

	return r.watch(ctx, key, txf)
}

// watch runs txf under WATCH key, retrying when another writer got in first.
func (r *RedisCartRepository) watch(ctx context.Context, key string, txf func(*redis.Tx) error) error {
	const maxAttempts = 5
	for i := 0; i < maxAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("cart %s: too much contention", key)
}
