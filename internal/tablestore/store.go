// Package tablestore keeps named tables as whole JSON blobs in a kv.Medium.
//
// Every read decodes the full table and every write re-encodes and replaces
// it. Tables are expected to stay small (tens to low thousands of records).
package tablestore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/nugabest/estatedb/internal/kv"
	"go.uber.org/zap"
)

// DefaultPrefix namespaces every table key inside a shared medium.
const DefaultPrefix = "nuga_postgres_"

var (
	// ErrStorageUnavailable is returned when the medium refused a read or a
	// write.
	ErrStorageUnavailable = errors.New("tablestore: storage unavailable")

	// ErrEncode is returned when records cannot be serialized. It signals a
	// programming error, never a missing record.
	ErrEncode = errors.New("tablestore: encode failed")
)

// Store is safe for concurrent use. Mutations of one table made through
// Update are serialized in call order within the process; there is no
// coordination with other processes sharing the medium.
type Store struct {
	medium kv.Medium
	prefix string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(medium kv.Medium, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		medium: medium,
		prefix: prefix,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Store) Prefix() string { return s.prefix }

// Key returns the medium key a table name is stored under.
func (s *Store) Key(name string) string { return s.prefix + name }

// Tables lists the table names currently present under the prefix.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	keys, err := s.medium.Keys(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list tables: %w", ErrStorageUnavailable, err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k[len(s.prefix):])
	}
	return names, nil
}

// Raw returns the stored blob for name without decoding it.
func (s *Store) Raw(ctx context.Context, name string) (string, bool, error) {
	v, ok, err := s.medium.Get(ctx, s.Key(name))
	if err != nil {
		return "", false, fmt.Errorf("%w: read %s: %w", ErrStorageUnavailable, name, err)
	}
	return v, ok, nil
}

func (s *Store) tableLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Exclusive runs fn while holding the lock Update uses for name.
func (s *Store) Exclusive(name string, fn func() error) error {
	l := s.tableLock(name)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// read loads and decodes the blob stored under key into dst. It reports
// false when the blob is absent, unreadable or corrupt; those cases are
// logged and never returned as errors.
func (s *Store) read(ctx context.Context, key, name string, dst any) bool {
	ok, err := s.readStrict(ctx, key, name, dst)
	if err != nil {
		s.logger.Warn("table read failed, treating as empty", zap.String("table", name), zap.Error(err))
		return false
	}
	return ok
}

// readStrict is read without hiding medium failures. Corrupt blobs are still
// reported as absent.
func (s *Store) readStrict(ctx context.Context, key, name string, dst any) (bool, error) {
	raw, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrStorageUnavailable, name, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("corrupt table blob, treating as empty", zap.String("table", name), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, key, name string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("table encode failed", zap.String("table", name), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrEncode, name, err)
	}
	if err := s.medium.Set(ctx, key, string(payload)); err != nil {
		s.logger.Error("table write failed", zap.String("table", name), zap.Int("bytes", len(payload)), zap.Error(err))
		return fmt.Errorf("%w: write %s: %w", ErrStorageUnavailable, name, err)
	}
	return nil
}
