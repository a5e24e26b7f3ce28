// Package kv persists the client's small string settings (session token,
// emails) in a single key-value table.
package kv

import "context"

// Repository is a durable string map.
type Repository interface {
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
