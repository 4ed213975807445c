package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	got, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestCacheExpiration(t *testing.T) {
	c := New(time.Minute)

	c.SetWithExpiration("key", "value", time.Nanosecond)
	time.Sleep(time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheDeleteAndFlush(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Flush()
	_, found = c.Get("b")
	assert.False(t, found)
}
