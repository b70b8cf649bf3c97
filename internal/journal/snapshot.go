package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sleuth-client/internal/model"

	"github.com/redis/go-redis/v9"
)

func SnapshotKey(sessionID string) string {
	return fmt.Sprintf("session:%s:turn", sessionID)
}

// RedisSnapshots publishes the latest turn state for companion observers.
type RedisSnapshots struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshots(rdb *redis.Client, ttl time.Duration) *RedisSnapshots {
	return &RedisSnapshots{rdb: rdb, ttl: ttl}
}

func (r *RedisSnapshots) Save(ctx context.Context, sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, SnapshotKey(sess.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the last published snapshot. redis.Nil is returned when none exists.
func (r *RedisSnapshots) Load(ctx context.Context, sessionID string) (model.Session, error) {
	var sess model.Session
	data, err := r.rdb.Get(ctx, SnapshotKey(sessionID)).Bytes()
	if err != nil {
		return sess, err
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return sess, fmt.Errorf("decode snapshot: %w", err)
	}
	return sess, nil
}
