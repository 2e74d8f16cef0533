package tablestore

import (
	"context"

	"go.uber.org/zap"
)

// GetTable returns every record of the named table in stored order. A table
// that was never written or whose blob does not decode is empty.
//
// Medium failures are logged and also read as empty. Code that writes back
// what it read must use ReadTable or Update instead.
func GetTable[T any](ctx context.Context, s *Store, name string) []T {
	var out []T
	if !s.read(ctx, s.Key(name), name, &out) || out == nil {
		return make([]T, 0)
	}
	return out
}

// ReadTable is GetTable for callers that must not mistake an unreachable
// medium for an empty table. Absent and corrupt blobs are still empty; a
// medium failure is returned as ErrStorageUnavailable.
func ReadTable[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	return ReadKey[T](ctx, s, s.Key(name))
}

// SaveTable replaces the named table with records.
func SaveTable[T any](ctx context.Context, s *Store, name string, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}
	return s.write(ctx, s.Key(name), name, records)
}

// Update reads the named table, passes it to fn and saves whatever fn
// returns. Calls for the same table on one Store run one at a time. If the
// read fails or fn returns an error nothing is written: running fn on an
// empty stand-in would overwrite every record the medium still holds.
func Update[T any](ctx context.Context, s *Store, name string, fn func([]T) ([]T, error)) error {
	l := s.tableLock(name)
	l.Lock()
	defer l.Unlock()

	rows, err := ReadTable[T](ctx, s, name)
	if err != nil {
		s.logger.Error("table read failed, update skipped", zap.String("table", name), zap.Error(err))
		return err
	}
	next, err := fn(rows)
	if err != nil {
		return err
	}
	return SaveTable(ctx, s, name, next)
}

// GetRecord loads a single-record blob. It returns nil when the blob is
// absent or corrupt.
func GetRecord[T any](ctx context.Context, s *Store, name string) *T {
	var out T
	if !s.read(ctx, s.Key(name), name, &out) {
		return nil
	}
	return &out
}

// ReadRecord is GetRecord with medium failures returned as
// ErrStorageUnavailable. Absent and corrupt blobs are nil.
func ReadRecord[T any](ctx context.Context, s *Store, name string) (*T, error) {
	var out T
	ok, err := s.readStrict(ctx, s.Key(name), name, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &out, nil
}

// SaveRecord replaces a single-record blob.
func SaveRecord[T any](ctx context.Context, s *Store, name string, record T) error {
	l := s.tableLock(name)
	l.Lock()
	defer l.Unlock()
	return s.write(ctx, s.Key(name), name, record)
}

// ReadKey and SaveKey address a blob by its full medium key, bypassing the
// prefix. The migration ledger lives under its own key this way. ReadKey
// returns medium failures; corrupt blobs are still empty.
func ReadKey[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	var out []T
	ok, err := s.readStrict(ctx, key, key, &out)
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return make([]T, 0), nil
	}
	return out, nil
}

func SaveKey[T any](ctx context.Context, s *Store, key string, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}
	return s.write(ctx, key, key, records)
}
