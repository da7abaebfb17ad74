// Package storage mirrors live sessions into Redis for audit and history.
// The in-memory store stays authoritative; every write here is best effort.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/kaleem-core/server/internal/core/error"
	"github.com/kaleem-core/server/internal/intake"
	logx "github.com/kaleem-core/server/pkg/logger"
)

// RedisMirror persists the per-session record as a hash and the chat history
// as an append-only list, both keyed by session id and expiring after ttl of
// inactivity.
type RedisMirror struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisMirror(rdb redis.Cmdable, ttl time.Duration) *RedisMirror {
	return &RedisMirror{rdb: rdb, ttl: ttl}
}

func (m *RedisMirror) recordKey(sessionID string) string {
	return fmt.Sprintf("intake:%s:record", sessionID)
}

func (m *RedisMirror) historyKey(sessionID string) string {
	return fmt.Sprintf("intake:%s:history", sessionID)
}

// UpsertFields writes field-level updates into the session record hash and
// stamps updated_at.
func (m *RedisMirror) UpsertFields(ctx context.Context, sessionID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	key := m.recordKey(sessionID)

	values := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	if err := m.rdb.HSet(ctx, key, values).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to upsert session record")
		return errx.WrapRedis(err)
	}
	return m.touch(ctx, key)
}

// AppendExchange pushes one chat turn onto the session's history list.
func (m *RedisMirror) AppendExchange(ctx context.Context, sessionID string, exchange intake.Exchange) error {
	b, err := json.Marshal(exchange)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal exchange")
		return fmt.Errorf("marshal exchange: %w", err)
	}
	key := m.historyKey(sessionID)

	if err := m.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push exchange to redis")
		return errx.WrapRedis(err)
	}
	return m.touch(ctx, key)
}

// LoadHistory retrieves the full chat history for a session, oldest first.
func (m *RedisMirror) LoadHistory(ctx context.Context, sessionID string) ([]intake.Exchange, error) {
	key := m.historyKey(sessionID)

	rows, err := m.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []intake.Exchange{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load chat history from redis")
		return nil, errx.WrapRedis(err)
	}

	exchanges := make([]intake.Exchange, 0, len(rows))
	for i, row := range rows {
		var e intake.Exchange
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal exchange")
			return nil, fmt.Errorf("unmarshal exchange at index %d: %w", i, err)
		}
		exchanges = append(exchanges, e)
	}
	return exchanges, nil
}

// LoadRecord returns the raw session record hash, empty when absent.
func (m *RedisMirror) LoadRecord(ctx context.Context, sessionID string) (map[string]string, error) {
	record, err := m.rdb.HGetAll(ctx, m.recordKey(sessionID)).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	return record, nil
}

// touch extends the TTL so active sessions outlive idle ones.
func (m *RedisMirror) touch(ctx context.Context, key string) error {
	if m.ttl <= 0 {
		return nil
	}
	ok, err := m.rdb.Expire(ctx, key, m.ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
		return errx.WrapRedis(err)
	}
	if !ok {
		logx.Warn().Str("key", key).Dur("ttl", m.ttl).Msg("failed to set TTL on mirror key")
	}
	return nil
}

var _ intake.Recorder = (*RedisMirror)(nil)
