package interfaces

// KeyValueStoreInterface persists whole JSON documents per key.
// Load reports false with a nil error when the key was never written.
type KeyValueStoreInterface interface {
	Load(key string, dst any) (bool, error)
	Save(key string, value any) error
}
