package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemory(t *testing.T) {
	c := NewInMemory()

	_, ok := c.Get("missing", time.Minute)
	assert.False(t, ok)

	c.Set("total", "42")
	v, ok := c.Get("total", time.Minute)
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	c.Invalidate("total")
	_, ok = c.Get("total", time.Minute)
	assert.False(t, ok)
}

func TestInMemory_Expiry(t *testing.T) {
	c := NewInMemory()

	c.Set("total", "42")
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("total", time.Millisecond)
	assert.False(t, ok)

	v, ok := c.Get("total", time.Minute)
	assert.True(t, ok)
	assert.Equal(t, "42", v)
}
