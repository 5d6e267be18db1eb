package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = time.Hour

// SubmissionGuard detects repeated website submissions backed by Redis.
// Key format: submission:<owner_id>:<url> -> site id
type SubmissionGuard struct {
	client *redis.Client
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client}
}

// Recent returns the site id of a submission of the same URL by the same
// owner within guardTTL, or "" when none exists.
func (g *SubmissionGuard) Recent(ctx context.Context, ownerID, rawURL string) (string, error) {
	id, err := g.client.Get(ctx, g.key(ownerID, rawURL)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("duplicate check: %w", err)
	}
	return id, nil
}

// Remember records a submission (expires after guardTTL).
func (g *SubmissionGuard) Remember(ctx context.Context, ownerID, rawURL, siteID string) error {
	return g.client.Set(ctx, g.key(ownerID, rawURL), siteID, guardTTL).Err()
}

func (g *SubmissionGuard) key(ownerID, rawURL string) string {
	return fmt.Sprintf("submission:%s:%s", ownerID, rawURL)
}
