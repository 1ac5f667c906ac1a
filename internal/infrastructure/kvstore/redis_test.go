package kvstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server when SAFEEAT_TEST_REDIS_URL is set
func TestRedisStore_Integration(t *testing.T) {
	url := os.Getenv("SAFEEAT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SAFEEAT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	store, err := NewRedisStore(ctx, url, "safeeat-test:"+uuid.NewString()+":")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Health(ctx))

	_, found, err := store.Get(ctx, "avoided_ingredients")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "avoided_ingredients", `["nötter"]`))

	value, found, err := store.Get(ctx, "avoided_ingredients")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["nötter"]`, value)

	require.NoError(t, store.client.Del(ctx, store.key("avoided_ingredients")).Err())
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store := &RedisStore{prefix: "safeeat:"}
	assert.Equal(t, "safeeat:avoided_ingredients", store.key("avoided_ingredients"))
}
