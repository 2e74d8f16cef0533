// Package migrate applies versioned schema migrations to a tablestore and
// records each applied version in a ledger blob.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/tablestore"
	"go.uber.org/zap"
)

// DefaultLedgerKey is the medium key of the ledger.
//
// It sits outside the table prefix because the ledger is not a table: the
// prefix scan behind `nugadb tables` and the health check never sees it, and
// no table name can collide with it. Two datasets that share a medium under
// different prefixes need different ledger keys too.
const DefaultLedgerKey = "nuga_migrations"

var (
	ErrSchemaTooNew      = errors.New("migrate: ledger has versions newer than this build")
	ErrDuplicateVersion  = errors.New("migrate: duplicate migration version")
	errInvalidMigrations = errors.New("migrate: invalid migration")
)

type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, store *tablestore.Store) error
}

type Runner struct {
	store      *tablestore.Store
	ledgerKey  string
	migrations []Migration
	logger     *zap.Logger
}

func NewRunner(store *tablestore.Store, ledgerKey string, migrations []Migration, logger *zap.Logger) *Runner {
	if ledgerKey == "" {
		ledgerKey = DefaultLedgerKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		store:      store,
		ledgerKey:  ledgerKey,
		migrations: migrations,
		logger:     logger,
	}
}

// ordered returns the migrations sorted by version.
func (r *Runner) ordered() ([]Migration, error) {
	out := slices.Clone(r.migrations)
	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	for i, m := range out {
		if m.Version <= 0 || m.Up == nil {
			return nil, fmt.Errorf("%w: version %d (%s)", errInvalidMigrations, m.Version, m.Name)
		}
		if i > 0 && out[i-1].Version == m.Version {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateVersion, m.Version)
		}
	}
	return out, nil
}

// Run applies every migration missing from the ledger in ascending version
// order and returns the entries it appended. A ledger entry is written only
// after its migration's Up returned nil; the first failure stops the run.
// Runs against one store are serialized.
func (r *Runner) Run(ctx context.Context) ([]models.Migration, error) {
	ordered, err := r.ordered()
	if err != nil {
		return nil, err
	}

	applied := make([]models.Migration, 0)
	err = r.store.Exclusive(r.ledgerKey, func() error {
		ledger, err := tablestore.ReadKey[models.Migration](ctx, r.store, r.ledgerKey)
		if err != nil {
			return fmt.Errorf("load ledger: %w", err)
		}

		done := make(map[int]bool, len(ledger))
		for _, e := range ledger {
			done[e.Version] = true
		}
		if latest := latestVersion(ledger); len(ordered) > 0 && latest > ordered[len(ordered)-1].Version {
			return fmt.Errorf("%w: ledger=%d known=%d", ErrSchemaTooNew, latest, ordered[len(ordered)-1].Version)
		}

		for _, m := range ordered {
			if done[m.Version] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			if err := m.Up(ctx, r.store); err != nil {
				r.logger.Error("migration failed",
					zap.Int("version", m.Version),
					zap.String("name", m.Name),
					zap.Error(err),
				)
				return fmt.Errorf("migration v%d (%s): %w", m.Version, m.Name, err)
			}

			entry := models.Migration{
				Version:    m.Version,
				Name:       m.Name,
				ExecutedAt: time.Now().UTC().Format(time.RFC3339Nano),
			}
			ledger = append(ledger, entry)
			if err := tablestore.SaveKey(ctx, r.store, r.ledgerKey, ledger); err != nil {
				return fmt.Errorf("record migration v%d: %w", m.Version, err)
			}
			applied = append(applied, entry)

			r.logger.Info("migration applied",
				zap.Int("version", m.Version),
				zap.String("name", m.Name),
				zap.Duration("took", time.Since(start)),
			)
		}
		return nil
	})
	return applied, err
}

// Applied returns the ledger in the order entries were recorded.
func (r *Runner) Applied(ctx context.Context) ([]models.Migration, error) {
	ledger, err := tablestore.ReadKey[models.Migration](ctx, r.store, r.ledgerKey)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return ledger, nil
}

// Pending returns the known migrations that are not in the ledger yet.
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	ordered, err := r.ordered()
	if err != nil {
		return nil, err
	}
	ledger, err := r.Applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Migration, 0)
	for _, m := range ordered {
		if !slices.ContainsFunc(ledger, func(e models.Migration) bool { return e.Version == m.Version }) {
			out = append(out, m)
		}
	}
	return out, nil
}

func latestVersion(ledger []models.Migration) int {
	latest := 0
	for _, e := range ledger {
		latest = max(latest, e.Version)
	}
	return latest
}
