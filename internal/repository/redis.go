package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freerider/customer-registry/internal/models"
)

// redisRepository implements CustomerRepository on a single Redis hash,
// one field per customer id, entities stored as JSON values.
type redisRepository struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL string
	Key string
}

// NewRedisRepository creates a Redis-backed customer repository
func NewRedisRepository(cfg RedisConfig, logger *slog.Logger) (CustomerRepository, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("key", cfg.Key),
	)

	return &redisRepository{
		client: client,
		key:    cfg.Key,
		logger: logger,
	}, nil
}

func (r *redisRepository) field(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (r *redisRepository) Save(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, models.ErrInvalidInput("customer must not be nil")
	}

	data, err := json.Marshal(customer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customer: %w", err)
	}

	if err := r.client.HSet(ctx, r.key, r.field(customer.ID), data).Err(); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

func (r *redisRepository) SaveAll(ctx context.Context, customers []*models.Customer) ([]*models.Customer, error) {
	if customers == nil {
		return nil, models.ErrInvalidInput("customers must not be nil")
	}
	for _, customer := range customers {
		if customer == nil {
			return nil, models.ErrInvalidInput("customers must not contain nil elements")
		}
	}

	for _, customer := range customers {
		if _, err := r.Save(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

func (r *redisRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := r.client.HExists(ctx, r.key, r.field(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return exists, nil
}

func (r *redisRepository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	data, err := r.client.HGet(ctx, r.key, r.field(id)).Result()
	if err == redis.Nil {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer := &models.Customer{}
	if err := json.Unmarshal([]byte(data), customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}
	return customer, nil
}

func (r *redisRepository) FindAll(ctx context.Context) ([]*models.Customer, error) {
	entries, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*models.Customer, 0, len(entries))
	for _, data := range entries {
		customer := &models.Customer{}
		if err := json.Unmarshal([]byte(data), customer); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (r *redisRepository) FindAllByID(ctx context.Context, ids []int64) ([]*models.Customer, error) {
	if ids == nil {
		return nil, models.ErrInvalidInput("ids must not be nil")
	}

	customers := []*models.Customer{}
	for _, id := range ids {
		customer, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue // id not found, silently omitted
			}
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (r *redisRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *redisRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.client.HDel(ctx, r.key, r.field(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return models.ErrInvalidInput("customer must not be nil")
	}

	stored, err := r.FindByID(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil // absent entity, no-op
		}
		return err
	}

	if stored.Equal(customer) {
		return r.DeleteByID(ctx, customer.ID)
	}
	return nil
}

func (r *redisRepository) DeleteAllByID(ctx context.Context, ids []int64) error {
	if ids == nil {
		return models.ErrInvalidInput("ids must not be nil")
	}

	for _, id := range ids {
		if err := r.DeleteByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *redisRepository) DeleteAllEntities(ctx context.Context, customers []*models.Customer) error {
	if customers == nil {
		return models.ErrInvalidInput("customers must not be nil")
	}
	for _, customer := range customers {
		if customer == nil {
			return models.ErrInvalidInput("customers must not contain nil elements")
		}
	}

	for _, customer := range customers {
		if err := r.Delete(ctx, customer); err != nil {
			return err
		}
	}
	return nil
}

func (r *redisRepository) DeleteAll(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *redisRepository) Close() error {
	r.logger.Info("closing Redis connection")
	return r.client.Close()
}
