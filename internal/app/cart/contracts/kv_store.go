package contracts

import "context"

// KVStore persists carts as opaque values keyed by cart id.
// Writes are last-write-wins; Subscribe reports writes made by anyone,
// including other processes sharing the store.
type KVStore interface {
	// Get returns found=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	Set(ctx context.Context, key string, value []byte) error

	// Subscribe calls fn with every value written to key until the returned
	// function is called or ctx is cancelled.
	Subscribe(ctx context.Context, key string, fn func(value []byte)) (unsubscribe func(), err error)
}
