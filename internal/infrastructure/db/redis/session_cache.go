package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sitedesk/admin-api/internal/session"
)

const sessionKey = "session:current"

// SessionCache persists the latest session snapshot in Redis as JSON, so a
// restart resumes from the last known principal. Writes are best-effort;
// concurrent writers race and the last write wins.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Load returns the persisted snapshot, or (nil, nil) when none is stored.
func (c *SessionCache) Load(ctx context.Context) (*session.Snapshot, error) {
	raw, err := c.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session cache read: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	return &snap, nil
}

// Save stores the snapshot without expiry; it lives until superseded.
func (c *SessionCache) Save(ctx context.Context, snap *session.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	if err := c.client.Set(ctx, sessionKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("session cache write: %w", err)
	}
	return nil
}
