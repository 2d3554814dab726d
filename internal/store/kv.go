package store

// KV is durable key-value storage for client state. Writes are
// synchronous: a Set must be visible to the next Get in the same
// process. Implementations fail soft on read, a key that cannot be
// loaded is simply absent.
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Remove(key string) error
	Clear() error
}
