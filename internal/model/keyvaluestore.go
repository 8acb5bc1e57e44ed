package model

//
// Key-value store
//

// KeyValueStore is a generic key-value store. We use it to keep
// persistent probe state on disk (e.g., the consent marker).
type KeyValueStore interface {
	// Get returns the value of the given key or an error if there
	// is no such key or we cannot read from the store.
	Get(key string) (value []byte, err error)

	// Set sets the value of the given key.
	Set(key string, value []byte) (err error)
}
