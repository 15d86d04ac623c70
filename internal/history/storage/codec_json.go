package storage

import (
	"encoding/json"
	"fmt"
)

// Ensure JSONCodec implements Codec interface.
var _ Codec[any, any] = (*JSONCodec[any, any])(nil)

// JSONCodec encodes keys and values as JSON.
//
// Use it with keys whose JSON form sorts like the keys themselves, such as
// fixed-length identifiers.
type JSONCodec[K, V any] struct{}

// EncodeKey encodes a key into a JSON byte slice for a storage backend.
func (c *JSONCodec[K, V]) EncodeKey(key K) ([]byte, error) {
	return json.Marshal(key)
}

// DecodeKey decodes a JSON byte slice into a key from a storage backend.
func (c *JSONCodec[K, V]) DecodeKey(data []byte) (K, error) {
	var key K
	if err := json.Unmarshal(data, &key); err != nil {
		return key, fmt.Errorf("failed to decode JSON key: %w", err)
	}
	return key, nil
}

// EncodeValue encodes a value into a JSON byte slice for a storage backend.
func (c *JSONCodec[K, V]) EncodeValue(value V) ([]byte, error) {
	return json.Marshal(value)
}

// DecodeValue decodes a JSON byte slice into a value from a storage backend.
func (c *JSONCodec[K, V]) DecodeValue(data []byte) (V, error) {
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode JSON value: %w", err)
	}
	return value, nil
}
