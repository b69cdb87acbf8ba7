package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers the moment a user's tokens were revoked.
// Key format: revoked:<uid> -> unix seconds. Entries expire after ttl, by
// which time every token issued before the revocation has expired too.
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

// RevokedAt returns the last revocation time for uid, if any.
func (s *RevocationStore) RevokedAt(ctx context.Context, uid string) (int64, bool, error) {
	v, err := s.client.Get(ctx, s.key(uid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("revocation lookup: %w", err)
	}
	at, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("revocation lookup: bad value %q: %w", v, err)
	}
	return at, true, nil
}

func (s *RevocationStore) Revoke(ctx context.Context, uid string, at int64) error {
	return s.client.Set(ctx, s.key(uid), strconv.FormatInt(at, 10), s.ttl).Err()
}

func (s *RevocationStore) key(uid string) string {
	return "revoked:" + uid
}
