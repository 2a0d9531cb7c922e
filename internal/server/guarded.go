package server

import (
	"sync"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/store"
)

// KV is the part of the store the network surfaces need.
type KV interface {
	Get(key string) (encoding.Value, error)
	Set(key string, value encoding.Value) error
	Delete(key string) error
	Keys() []string
	Len() int
}

// Guarded wraps a store with a mutex around all of its methods. It is safe for concurrent use.
type Guarded struct {
	mutex sync.Mutex
	store *store.Store
}

// Guarded implements KV.
var _ KV = (*Guarded)(nil)

// NewGuarded creates a Guarded for the store. The store must not be used directly afterward.
func NewGuarded(store *store.Store) *Guarded {
	return &Guarded{
		store: store,
	}
}

func (g *Guarded) Get(key string) (encoding.Value, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.store.Get(key)
}

func (g *Guarded) Set(key string, value encoding.Value) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.store.Set(key, value)
}

func (g *Guarded) Delete(key string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.store.Delete(key)
}

func (g *Guarded) Keys() []string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.store.Keys()
}

func (g *Guarded) Len() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.store.Len()
}

// Close closes the store. Calls made afterward fail with store.ErrClosed.
func (g *Guarded) Close() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.store.Close()
}
