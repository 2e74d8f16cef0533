// Package cli implements nugadb, the operator tool for the listings store.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/nugabest/estatedb/internal/config"
	"github.com/nugabest/estatedb/internal/kv"
	"github.com/nugabest/estatedb/internal/observ"
	"github.com/nugabest/estatedb/internal/tablestore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Env is an opened store plus the settings commands need.
type Env struct {
	Store         *tablestore.Store
	LedgerKey     string
	AdminPassword string
	Logger        *zap.Logger
	Close         func() error
}

// Opener returns the Env a command runs against.
type Opener func(ctx context.Context) (*Env, error)

// OpenFromConfig opens the medium named by the process configuration.
func OpenFromConfig(ctx context.Context) (*Env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	medium, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Env{
		Store:         tablestore.New(medium, cfg.KeyPrefix, logger),
		LedgerKey:     cfg.LedgerKey,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
		Close:         medium.Close,
	}, nil
}

func NewRootCommand(out io.Writer, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nugadb",
		Short:         "Inspect and migrate the listings store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.AddCommand(newMigrateCommand(out, open))
	cmd.AddCommand(newLedgerCommand(out, open))
	cmd.AddCommand(newTablesCommand(out, open))
	cmd.AddCommand(newTableCommand(out, open))
	cmd.AddCommand(newSetPasswordCommand(out, open))
	return cmd
}

// withEnv opens the store, runs fn and closes the store again.
func withEnv(cmd *cobra.Command, open Opener, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if env.Close != nil {
			_ = env.Close()
		}
	}()
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	return fn(ctx, env)
}
