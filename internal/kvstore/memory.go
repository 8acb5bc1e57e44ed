package kvstore

import (
	"errors"
	"sync"

	"github.com/pageperf/pageperf/internal/model"
)

// ErrNoSuchKey indicates that there's no value for the given key.
var ErrNoSuchKey = errors.New("no such key")

// Memory is an in-memory key-value store. The zero value is ready to
// use. Tests and the agent simulator use this store so they never
// touch the real state directory.
type Memory struct {
	// m is the underlying map.
	m map[string][]byte

	// mu provides mutual exclusion.
	mu sync.Mutex
}

var _ model.KeyValueStore = &Memory{}

// Get returns the given key's value. In case of error, the error is
// such that errors.Is(err, ErrNoSuchKey) holds.
func (kvs *Memory) Get(key string) ([]byte, error) {
	kvs.mu.Lock()
	defer kvs.mu.Unlock()
	value, found := kvs.m[key]
	if !found {
		return nil, ErrNoSuchKey
	}
	return value, nil
}

// Set sets the value of the given key.
func (kvs *Memory) Set(key string, value []byte) error {
	kvs.mu.Lock()
	defer kvs.mu.Unlock()
	if kvs.m == nil {
		kvs.m = make(map[string][]byte)
	}
	kvs.m[key] = value
	return nil
}
