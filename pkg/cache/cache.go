package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"

	"github.com/vango-dev/ssr/pkg/host"
)

// Cache is a render cache backend.
type Cache interface {
	// Get returns the cached value for key. A missing or expired key returns
	// ok == false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// ErrClosed is returned when operations are attempted on a closed cache.
type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "render cache is closed"
}

// Key derives a cache key from a tag name and ordered props. Prop order is
// significant because it is the order properties are applied in.
func Key(tag string, props host.Props) (string, error) {
	pairs := make([][2]any, len(props))
	for i, p := range props {
		pairs[i] = [2]any{p.Key, p.Value}
	}
	data, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(tag))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Nop is a Cache that stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, string) error                     { return nil }
func (Nop) Close() error                                             { return nil }
