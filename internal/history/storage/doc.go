// Package storage provides the key/value layer behind the conversation
// history. Backends keep entries ordered by key, so listing pages through
// them from the smallest key upwards.
package storage
