package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandringspris/vandringspris-data/internal/cache"
)

func TestCache(t *testing.T) {
	t.Run("Set Then Get", func(t *testing.T) {
		c := cache.New(true)
		etag := c.Set("k", []byte("v"), time.Minute)
		data, got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, []byte("v"), data)
		assert.Equal(t, etag, got)
	})

	t.Run("Expired Entry Misses", func(t *testing.T) {
		c := cache.New(true)
		c.Set("k", []byte("v"), -time.Second)
		_, _, ok := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("Disabled Cache Never Hits", func(t *testing.T) {
		c := cache.New(false)
		etag := c.Set("k", []byte("v"), time.Minute)
		assert.NotEmpty(t, etag)
		_, _, ok := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("Invalidate By Prefix", func(t *testing.T) {
		c := cache.New(true)
		c.Set("results:461:2025", []byte("a"), time.Minute)
		c.Set("results:114:2025", []byte("b"), time.Minute)
		c.Set("filters:defaults", []byte("c"), time.Minute)

		c.Invalidate("results:")

		_, _, ok := c.Get("results:461:2025")
		assert.False(t, ok)
		_, _, ok = c.Get("results:114:2025")
		assert.False(t, ok)
		_, _, ok = c.Get("filters:defaults")
		assert.True(t, ok)
	})
}

func TestETag(t *testing.T) {
	t.Run("Stable And Weak", func(t *testing.T) {
		a := cache.ComputeETag([]byte("payload"))
		b := cache.ComputeETag([]byte("payload"))
		assert.Equal(t, a, b)
		assert.Contains(t, a, `W/"`)
	})

	t.Run("Differs Per Payload", func(t *testing.T) {
		assert.NotEqual(t, cache.ComputeETag([]byte("a")), cache.ComputeETag([]byte("b")))
	})

	t.Run("Match Semantics", func(t *testing.T) {
		etag := cache.ComputeETag([]byte("x"))
		assert.True(t, cache.CheckETagMatch(etag, etag))
		assert.True(t, cache.CheckETagMatch("*", etag))
		assert.False(t, cache.CheckETagMatch("", etag))
		assert.False(t, cache.CheckETagMatch(`W/"other"`, etag))
	})
}
