package taskmanager

import (
	"fmt"
	"sort"
	"sync"
)

// SharedContext carries step results from one task to the tasks that depend on it.
type SharedContext struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

// NewSharedContext creates a new SharedContext.
func NewSharedContext() *SharedContext {
	return &SharedContext{
		data: make(map[string]interface{}),
	}
}

// Set adds or updates a value in the context.
func (sc *SharedContext) Set(key string, value interface{}) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.data[key] = value
}

// Get retrieves a value from the context.
func (sc *SharedContext) Get(key string) (interface{}, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	val, ok := sc.data[key]
	return val, ok
}

// GetString retrieves a string value. A missing key or a value of another
// type is an error: a task reading it ran before its producer.
func (sc *SharedContext) GetString(key string) (string, error) {
	val, ok := sc.Get(key)
	if !ok {
		return "", fmt.Errorf("shared context has no value for %q", key)
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("shared context value for %q is %T, not string", key, val)
	}
	return s, nil
}

// Keys returns the stored keys in sorted order.
func (sc *SharedContext) Keys() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	keys := make([]string, 0, len(sc.data))
	for k := range sc.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
