package querycache

import "sync"

// Token identifies one request for a cache key. A token is stale once a newer
// request for the same key has begun.
type Token struct {
	Key        string
	Generation uint64
}

type entry struct {
	generation uint64
	value      any
	present    bool
}

// Cache holds the latest server representation per key and refuses writes from
// responses that were overtaken by a newer request for the same key.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Begin registers a new request for key and returns its token.
func (c *Cache) Begin(key string) Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.generation++
	return Token{Key: key, Generation: e.generation}
}

// Commit stores value if tok is still the newest request for its key.
func (c *Cache) Commit(tok Token, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tok.Key]
	if !ok || e.generation != tok.Generation {
		return false
	}
	e.value = value
	e.present = true
	return true
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.present {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops the cached value and makes every outstanding token for key stale.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.generation++
		e.value = nil
		e.present = false
	}
}

func Key(kind, id string) string {
	return kind + ":" + id
}
