package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/nugabest/estatedb/internal/auth"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/migrate"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/spf13/cobra"
)

var errUserNotFound = errors.New("user not found")

func newMigrateCommand(out io.Writer, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				runner := migrate.NewRunner(env.Store, env.LedgerKey,
					migrate.DefaultMigrations(migrate.Options{AdminPassword: env.AdminPassword, Logger: env.Logger}),
					env.Logger)
				applied, err := runner.Run(ctx)
				for _, m := range applied {
					fmt.Fprintf(out, "applied v%d %s\n", m.Version, m.Name)
				}
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(out, "schema is up to date")
				}
				return nil
			})
		},
	}
}

func newLedgerCommand(out io.Writer, open Opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				runner := migrate.NewRunner(env.Store, env.LedgerKey,
					migrate.DefaultMigrations(migrate.Options{}), env.Logger)
				applied, err := runner.Applied(ctx)
				if err != nil {
					return err
				}
				pending, err := runner.Pending(ctx)
				if err != nil {
					return err
				}

				if asJSON {
					names := make([]string, 0, len(pending))
					for _, m := range pending {
						names = append(names, fmt.Sprintf("v%d %s", m.Version, m.Name))
					}
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(struct {
						Applied []models.Migration `json:"applied"`
						Pending []string           `json:"pending"`
					}{applied, names})
				}

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tNAME\tEXECUTED AT")
				for _, m := range applied {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", m.Version, m.Name, m.ExecutedAt)
				}
				for _, m := range pending {
					fmt.Fprintf(tw, "%d\t%s\tpending\n", m.Version, m.Name)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the ledger as JSON")
	return cmd
}

func newTablesCommand(out io.Writer, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables present in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				names, err := env.Store.Tables(ctx)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			})
		},
	}
}

func newTableCommand(out io.Writer, open Opener) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "table <name>",
		Short: "Dump the raw JSON blob of one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				raw, ok, err := env.Store.Raw(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("table %q does not exist", args[0])
				}
				if pretty {
					var buf bytes.Buffer
					if err := json.Indent(&buf, []byte(raw), "", "  "); err == nil {
						raw = buf.String()
					}
				}
				_, err = fmt.Fprintln(out, raw)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON")
	return cmd
}

func newSetPasswordCommand(out io.Writer, open Opener) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set-password <email>",
		Short: "Set a user's password (read from stdin when --password is omitted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if len(password) < auth.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
			}
			if len(password) > auth.MaxPasswordBytes {
				return fmt.Errorf("password must be at most %d bytes", auth.MaxPasswordBytes)
			}

			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				svc, err := data.Open(ctx, env.Store, env.Logger, data.Options{
					LedgerKey:     env.LedgerKey,
					AdminPassword: env.AdminPassword,
				})
				if err != nil {
					return err
				}
				user, err := svc.FindUserByEmail(ctx, args[0])
				if err != nil {
					return err
				}
				if user == nil {
					return fmt.Errorf("%w: %s", errUserNotFound, args[0])
				}
				hash, err := auth.HashPassword(password)
				if err != nil {
					return err
				}
				user.PasswordHash = hash
				if err := svc.UpdateUser(ctx, *user); err != nil {
					return err
				}
				fmt.Fprintf(out, "password updated for %s\n", user.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password")
	return cmd
}
