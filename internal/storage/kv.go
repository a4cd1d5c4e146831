package storage

import (
	"context"
	"errors"
)

const (
	DefaultKey  = "activeweek_workouts"
	FallbackKey = "activeweek_workouts_fallback"
)

var ErrKeyNotFound = errors.New("key not found")

//go:generate mockgen -source=$GOFILE -destination=kv_mocks_test.go -package=storage_test

// KV is a string key-value store holding the serialized collection.
type KV interface {
	// Get returns ErrKeyNotFound when the key has no value.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
