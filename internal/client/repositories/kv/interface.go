// Package kv is the key/value repository backing the persistent session.
package kv

import "context"

// Repository stores string values under string keys.
//
// List returns every pair in one query. Delete is a no-op for keys that do
// not exist.
type Repository interface {
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
}
