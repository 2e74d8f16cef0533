// Package kvstore implements the repository contracts on top of the
// whole-table tablestore.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

var errUnchanged = errors.New("table unchanged")

// mutate runs fn under the table lock. When fn reports no change the table
// is not rewritten.
func mutate[T any](ctx context.Context, s *tablestore.Store, table string, fn func([]T) ([]T, bool, error)) (bool, error) {
	err := tablestore.Update(ctx, s, table, func(rows []T) ([]T, error) {
		next, changed, err := fn(rows)
		if err != nil {
			return nil, err
		}
		if !changed {
			return nil, errUnchanged
		}
		return next, nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update %s: %w", table, err)
	}
	return true, nil
}

// load reads a whole table. A medium outage comes back as
// tablestore.ErrStorageUnavailable instead of an empty table.
func load[T any](ctx context.Context, s *tablestore.Store, table string) ([]T, error) {
	rows, err := tablestore.ReadTable[T](ctx, s, table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return rows, nil
}

func indexOf[T any](rows []T, id string, idOf func(T) string) int {
	for i := range rows {
		if idOf(rows[i]) == id {
			return i
		}
	}
	return -1
}

// upsert replaces the record with the same id in place. New records go to
// the front when prepend is set and to the back otherwise.
func upsert[T any](rows []T, rec T, idOf func(T) string, prepend bool) []T {
	if i := indexOf(rows, idOf(rec), idOf); i >= 0 {
		rows[i] = rec
		return rows
	}
	if prepend {
		return append([]T{rec}, rows...)
	}
	return append(rows, rec)
}

func without[T any](rows []T, id string, idOf func(T) string) ([]T, bool) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if idOf(r) != id {
			out = append(out, r)
		}
	}
	return out, len(out) != len(rows)
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", repository.ErrInvalid, fmt.Sprintf(format, args...))
}

// NewID returns a prefixed random identifier such as "usr_1f0c...".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Now is the timestamp format every record uses.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
