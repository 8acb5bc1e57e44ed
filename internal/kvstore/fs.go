// Package kvstore contains the key-value stores holding persistent
// probe state, such as the consent marker and the config document.
package kvstore

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// FS is a file-system backed key-value store. Each key maps to a file
// inside the base directory; reads and writes go through lockedfile so
// that concurrent probe processes never observe partial writes.
type FS struct {
	basedir string
}

// NewFS creates a new [*FS] rooted at basedir, creating the directory
// when needed.
func NewFS(basedir string) (*FS, error) {
	return newFS(basedir, os.MkdirAll)
}

// osMkdirAll is the type of os.MkdirAll.
type osMkdirAll func(path string, perm fs.FileMode) error

// newFS is like NewFS with a customizable mkdir for testing the
// directory-creation failure path.
func newFS(basedir string, mkdir osMkdirAll) (*FS, error) {
	if err := mkdir(basedir, 0700); err != nil {
		return nil, err
	}
	return &FS{basedir: basedir}, nil
}

// filename maps a key to its file inside the base directory.
func (kvs *FS) filename(key string) string {
	return filepath.Join(kvs.basedir, key)
}

// Get returns the given key's value. In case of error, the error is
// such that errors.Is(err, ErrNoSuchKey) holds.
func (kvs *FS) Get(key string) ([]byte, error) {
	data, err := lockedfile.Read(kvs.filename(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchKey, err.Error())
	}
	return data, nil
}

// Set sets the value of the given key.
func (kvs *FS) Set(key string, value []byte) error {
	return lockedfile.Write(kvs.filename(key), bytes.NewReader(value), 0600)
}
