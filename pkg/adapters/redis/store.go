package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/idx/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// ClaimStore implements ports.ClaimStore using a Redis set, so claims
// survive restarts and are shared between API replicas.
type ClaimStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*ClaimStore)

// WithTTL sets the expiration of the claimed set, refreshed on every claim.
func WithTTL(ttl time.Duration) Option {
	return func(s *ClaimStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *ClaimStore) {
		s.prefix = prefix
	}
}

// New creates a new Redis claim store with options.
func New(address, password string, db int, opts ...Option) *ClaimStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis claim store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *ClaimStore {
	store := &ClaimStore{
		client: client,
		prefix: "idx:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *ClaimStore) key() string {
	return s.prefix + "claimed"
}

// Claim adds the incident to the claimed set.
func (s *ClaimStore) Claim(ctx context.Context, incidentID string) error {
	if incidentID == "" {
		return domain.ErrEmptyIncidentID
	}

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, s.key(), incidentID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to claim incident in redis: %w", err)
	}
	return nil
}

// List returns the claimed IDs, sorted.
func (s *ClaimStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list claims from redis: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Ping checks connectivity.
func (s *ClaimStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *ClaimStore) Close() error {
	return s.client.Close()
}
