package mocks

import (
	"bytes"
	"errors"
	"testing"
)

func TestKeyValueStore(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		expected := errors.New("mocked error")
		kvs := &KeyValueStore{
			MockGet: func(key string) ([]byte, error) {
				return nil, expected
			},
		}
		value, err := kvs.Get("antani")
		if !errors.Is(err, expected) {
			t.Fatal("not the error we expected", err)
		}
		if value != nil {
			t.Fatal("expected nil value here")
		}
	})

	t.Run("Set", func(t *testing.T) {
		var (
			gotKey   string
			gotValue []byte
		)
		kvs := &KeyValueStore{
			MockSet: func(key string, value []byte) error {
				gotKey = key
				gotValue = value
				return nil
			},
		}
		if err := kvs.Set("antani", []byte("mascetti")); err != nil {
			t.Fatal(err)
		}
		if gotKey != "antani" {
			t.Fatal("unexpected key", gotKey)
		}
		if !bytes.Equal(gotValue, []byte("mascetti")) {
			t.Fatal("unexpected value")
		}
	})
}
