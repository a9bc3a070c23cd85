package validator

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quarrydb/quarry/document"
)

// Store persists attached schema documents so validators can be rebuilt
// after a restart.
type Store interface {
	// Save persists the schema document for a collection, replacing any
	// previous schema.
	Save(ctx context.Context, collection string, schema document.Document) error

	// Load returns the schema for a collection. The boolean reports whether
	// a schema was found.
	Load(ctx context.Context, collection string) (document.Document, bool, error)

	// Delete removes the schema for a collection. Deleting an absent schema
	// is not an error.
	Delete(ctx context.Context, collection string) error

	// LoadAll returns every persisted schema keyed by collection.
	LoadAll(ctx context.Context) (map[string]document.Document, error)

	// Close releases the store's resources.
	Close() error
}

// RedisOptions configures the Redis connection of a RedisStore.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// KeyPrefix namespaces the schema keys. Defaults to "quarry:schema:".
	KeyPrefix string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection
	// establishment.
	ConnectTimeout time.Duration
}

// RedisStore implements Store on Redis, storing one JSON-encoded schema
// document per collection under a prefixed key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a schema store with the given options and verifies
// the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "quarry:schema:"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

func (s *RedisStore) key(collection string) string {
	return s.prefix + collection
}

// Save persists the schema document for a collection.
func (s *RedisStore) Save(ctx context.Context, collection string, schema document.Document) error {
	data, err := schema.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode schema for %s: %w", collection, err)
	}
	if err := s.client.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save schema for %s: %w", collection, err)
	}
	return nil
}

// Load returns the schema for a collection.
func (s *RedisStore) Load(ctx context.Context, collection string) (document.Document, bool, error) {
	data, err := s.client.Get(ctx, s.key(collection)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load schema for %s: %w", collection, err)
	}
	schema, err := document.ParseJSON([]byte(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode stored schema for %s: %w", collection, err)
	}
	return schema, true, nil
}

// Delete removes the schema for a collection.
func (s *RedisStore) Delete(ctx context.Context, collection string) error {
	if err := s.client.Del(ctx, s.key(collection)).Err(); err != nil {
		return fmt.Errorf("failed to delete schema for %s: %w", collection, err)
	}
	return nil
}

// LoadAll returns every persisted schema keyed by collection.
func (s *RedisStore) LoadAll(ctx context.Context) (map[string]document.Document, error) {
	schemas := make(map[string]document.Document)

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		collection := strings.TrimPrefix(key, s.prefix)

		data, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load schema for %s: %w", collection, err)
		}
		schema, err := document.ParseJSON([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored schema for %s: %w", collection, err)
		}
		schemas[collection] = schema
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan schema keys: %w", err)
	}

	return schemas, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
