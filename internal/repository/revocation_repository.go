package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRepository is the token revocation store consulted on every
// authenticated request. Entries carry a TTL at least as long as the token's
// own expiry, after which they are garbage-collected by the store.
type RevocationRepository interface {
	Revoke(ctx context.Context, jti, subject string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revocationKeyPrefix = "revoked:"

type revocationRepository struct {
	client *redis.Client
}

// NewRevocationRepository returns a Redis-backed implementation. Redis key
// expiry handles cleanup so a record never outlives the token it revokes by
// more than the supplied TTL.
func NewRevocationRepository(client *redis.Client) RevocationRepository {
	return &revocationRepository{client: client}
}

// Revoke marks a jti as revoked. Revoking an already-revoked jti is a no-op
// success. A non-positive TTL means the token has already expired naturally,
// so there is nothing to remember.
func (r *revocationRepository) Revoke(ctx context.Context, jti, subject string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKeyPrefix+jti, subject, ttl).Err()
}

func (r *revocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
