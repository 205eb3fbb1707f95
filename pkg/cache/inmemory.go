package cache

import (
	"sync"
	"time"
)

type InMemory struct {
	storage map[string]string
	lastSet map[string]time.Time

	mx sync.RWMutex
}

func NewInMemory() *InMemory {
	return &InMemory{
		storage: make(map[string]string, 10),
		lastSet: make(map[string]time.Time, 10),

		mx: sync.RWMutex{},
	}
}

func (c *InMemory) Get(key string, ttl time.Duration) (string, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	v, ok := c.storage[key]
	if !ok {
		return "", false
	}
	if time.Since(c.lastSet[key]) > ttl {
		return "", false
	}
	return v, true
}

func (c *InMemory) Set(key, value string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.storage[key] = value
	c.lastSet[key] = time.Now()
}

func (c *InMemory) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	delete(c.storage, key)
	delete(c.lastSet, key)
}
