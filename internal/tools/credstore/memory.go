package credstore

import (
	"context"
	"sync"
)

type memoryEngine struct {
	values map[string]string
	sync.Mutex
}

// NewMemoryEngine backs a store with process memory. Used for
// per-request sessions seeded from headers and in tests.
func NewMemoryEngine() Engine {
	return &memoryEngine{
		values: make(map[string]string),
	}
}

func (e *memoryEngine) Get(ctx context.Context, key string) (string, error) {
	e.Lock()
	defer e.Unlock()

	return e.values[key], nil
}

func (e *memoryEngine) Set(ctx context.Context, key string, value string) error {
	e.Lock()
	e.values[key] = value
	e.Unlock()

	return nil
}

func (e *memoryEngine) Delete(ctx context.Context, keys ...string) error {
	e.Lock()
	defer e.Unlock()

	for _, key := range keys {
		delete(e.values, key)
	}

	return nil
}
