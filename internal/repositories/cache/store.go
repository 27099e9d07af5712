package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"fraudscope/internal/config"
	"fraudscope/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every document as a JSON string under
// <prefix>:<collection>:doc:<id> and pushes the id onto
// <prefix>:<collection>:index, so the index is newest first.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if client == nil {
		panic("redis client is required")
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// GenerateKey builds a namespaced key.
func (s *RedisStore) GenerateKey(collection, keyType string, value interface{}) string {
	if value == nil {
		return fmt.Sprintf("%s:%s:%s", s.prefix, collection, keyType)
	}
	return fmt.Sprintf("%s:%s:%s:%v", s.prefix, collection, keyType, value)
}

func (s *RedisStore) collectionsKey() string {
	return s.prefix + ":collections"
}

func (s *RedisStore) InsertTransaction(ctx context.Context, tx *models.Transaction) (string, error) {
	tx.ID = uuid.NewString()
	tx.CreatedAt = s.now().UTC()
	if err := s.insert(ctx, models.CollectionTransaction, tx.ID, tx); err != nil {
		tx.ID = ""
		return "", err
	}
	return tx.ID, nil
}

func (s *RedisStore) InsertAlert(ctx context.Context, alert *models.Alert) (string, error) {
	alert.ID = uuid.NewString()
	alert.CreatedAt = s.now().UTC()
	if err := s.insert(ctx, models.CollectionAlert, alert.ID, alert); err != nil {
		alert.ID = ""
		return "", err
	}
	return alert.ID, nil
}

func (s *RedisStore) FindTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	return find[models.Transaction](ctx, s, models.CollectionTransaction, limit)
}

func (s *RedisStore) FindAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	return find[models.Alert](ctx, s, models.CollectionAlert, limit)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return HealthCheck(ctx, s.client)
}

func (s *RedisStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.collectionsKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Name() string { return config.DriverRedis }

// Close closes the Redis client connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) insert(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", collection, err)
	}

	// Document, index entry and collection name land together or not at all.
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.GenerateKey(collection, "doc", id), data, 0)
		pipe.LPush(ctx, s.GenerateKey(collection, "index", nil), id)
		pipe.SAdd(ctx, s.collectionsKey(), collection)
		return nil
	})
	return err
}

func find[T any](ctx context.Context, s *RedisStore, collection string, limit int) ([]T, error) {
	docs := make([]T, 0)
	if limit <= 0 {
		return docs, nil
	}

	ids, err := s.client.LRange(ctx, s.GenerateKey(collection, "index", nil), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return docs, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.GenerateKey(collection, "doc", id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document, skip it.
			continue
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s document %s: %w", collection, ids[i], err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
