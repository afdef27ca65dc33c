package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/idx/pkg/adapters/redis"
	"github.com/aretw0/idx/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisClaimStore_Contract(t *testing.T) {
	_, client := setupMiniredis(t)
	store := redis.NewFromClient(client)
	tests.ClaimStoreContractTest(t, store)
}

func TestRedisClaimStore_Keys(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, store.Claim(ctx, "inc-1"))
	require.NoError(t, store.Ping(ctx))

	members, err := mr.Members("test:claimed")
	require.NoError(t, err)
	assert.Equal(t, []string{"inc-1"}, members)
	assert.Equal(t, time.Hour, mr.TTL("test:claimed"))

	mr.FastForward(2 * time.Hour)
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisClaimStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := redis.NewFromClient(client)
	mr.Close()

	err = store.Claim(context.Background(), "inc-1")
	assert.Error(t, err)

	_, err = store.List(context.Background())
	assert.Error(t, err)
}
