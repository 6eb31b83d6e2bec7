package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AuditSink stores audit entries outside the process.
type AuditSink interface {
	Append(ctx context.Context, entry AuditEntry) error
}

// RedisSink appends JSON audit entries to one redis list per session.
type RedisSink struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisSink(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (r *RedisSink) Key(sessionID string) string {
	return r.keyPrefix + sessionID
}

func (r *RedisSink) Append(ctx context.Context, entry AuditEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	key := r.Key(entry.SessionID)
	if err := r.client.RPush(ctx, key, string(data)).Err(); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("set audit list ttl: %w", err)
		}
	}
	return nil
}

// Entries reads back the audit list of a session.
func (r *RedisSink) Entries(ctx context.Context, sessionID string) ([]AuditEntry, error) {
	raw, err := r.client.LRange(ctx, r.Key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read audit entries: %w", err)
	}
	entries := make([]AuditEntry, 0, len(raw))
	for _, item := range raw {
		var e AuditEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
