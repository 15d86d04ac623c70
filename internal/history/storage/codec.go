package storage

// Codec encodes keys and values for backends that store bytes.
//
// Key encodings must preserve the ordering of keys, since byte-ordered
// backends list entries in encoded order.
type Codec[K, V any] interface {
	EncodeKey(K) ([]byte, error)
	DecodeKey([]byte) (K, error)
	EncodeValue(V) ([]byte, error)
	DecodeValue([]byte) (V, error)
}
