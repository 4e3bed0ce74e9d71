// db/store_redis.go
package db

import (
	"context"
	"fmt"

	"lab_loan_tool/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as one string key.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "labloans"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(d models.Document) string { return fmt.Sprintf("%s:doc:%s", s.prefix, d) }

func (s *RedisStore) Load(ctx context.Context) (*models.Snapshot, error) {
	keys := make([]string, len(models.Documents))
	for i, d := range models.Documents {
		keys[i] = s.key(d)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	snap := models.NewSnapshot()
	for i, v := range vals {
		str, ok := v.(string)
		if !ok { // nil → 该文档尚不存在
			continue
		}
		if err := DecodeDocument(snap, models.Documents[i], []byte(str)); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// Save writes all given documents in one MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, snap *models.Snapshot, docs ...models.Document) error {
	encoded, err := encodeAll(snap, docs)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for d, b := range encoded {
		pipe.Set(ctx, s.key(d), b, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis exec: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
