package tablestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/redis/go-redis/v9"

	"augmentor/internal/resources"
	"augmentor/internal/table"
)

// DefaultKey is the Redis hash holding the published tables.
const DefaultKey = "augmentor:tables"

// Store wraps a Redis client to publish persisted tables under their
// resource names. It satisfies resources.Source.
type Store struct {
	client *redis.Client
	key    string
}

var _ resources.Source = (*Store)(nil)

// New creates a new Store with the provided Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client, key: DefaultKey}
}

// WithKey returns a copy of the store that uses another hash.
func (s *Store) WithKey(key string) *Store {
	return &Store{client: s.client, key: key}
}

// Save encodes t and stores it under name.
func (s *Store) Save(ctx context.Context, name string, t *table.Table) error {
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.Put(ctx, name, data)
}

// Put stores raw resource bytes under name.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.client.HSet(ctx, s.key, name, data).Err()
}

// Get returns the bytes stored under name. A missing name wraps
// fs.ErrNotExist.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.HGet(ctx, s.key, name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return data, err
}

// Delete removes name from the store.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.client.HDel(ctx, s.key, name).Err()
}

// List returns the stored resource names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.HKeys(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile implements resources.Source.
func (s *Store) ReadFile(name string) ([]byte, error) {
	return s.Get(context.Background(), name)
}
