package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return New(client, "wp:"), mr, cleanup
}

func TestCache_SetGet(t *testing.T) {
	c, mr, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "hot", []item{{ID: 1, Name: "a"}}, time.Minute))
	assert.True(t, mr.Exists("wp:hot"))

	var got []item
	hit, err := c.GetJSON(ctx, "hot", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestCache_Miss(t *testing.T) {
	c, _, cleanup := setupTestCache(t)
	defer cleanup()

	var got []item
	hit, err := c.GetJSON(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_Expiry(t *testing.T) {
	c, mr, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "hot", item{ID: 1}, time.Second))
	mr.FastForward(2 * time.Second)

	var got item
	hit, err := c.GetJSON(ctx, "hot", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_Delete(t *testing.T) {
	c, mr, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "a", 1, 0))
	require.NoError(t, c.SetJSON(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	assert.False(t, mr.Exists("wp:a"))
	assert.False(t, mr.Exists("wp:b"))
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr, cleanup := setupTestCache(t)
	defer cleanup()

	require.NoError(t, mr.Set("wp:hot", "{not json"))

	var got item
	_, err := c.GetJSON(context.Background(), "hot", &got)
	assert.Error(t, err)
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.Nil(t, New(nil, "x"))
	assert.NoError(t, c.SetJSON(ctx, "k", 1, 0))
	assert.NoError(t, c.Delete(ctx, "k"))

	var got int
	hit, err := c.GetJSON(ctx, "k", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}
