package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/nugabest/estatedb/internal/auth"
	"github.com/nugabest/estatedb/internal/kv"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/seed"
	"github.com/nugabest/estatedb/internal/tablestore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryOpener(m kv.Medium) Opener {
	return func(context.Context) (*Env, error) {
		return &Env{
			Store:         tablestore.New(m, tablestore.DefaultPrefix, zap.NewNop()),
			AdminPassword: "admin12345",
		}, nil
	}
}

func execute(t *testing.T, open Opener, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out, open)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateThenLedger(t *testing.T) {
	t.Parallel()
	open := memoryOpener(kv.NewMemory())

	out, err := execute(t, open, "", "ledger")
	require.NoError(t, err)
	require.Contains(t, out, "pending")

	out, err = execute(t, open, "", "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "applied v1 Initial Schema Setup")
	require.Contains(t, out, "applied v3")

	out, err = execute(t, open, "", "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "schema is up to date")

	out, err = execute(t, open, "", "ledger", "--json")
	require.NoError(t, err)
	var ledger struct {
		Applied []models.Migration `json:"applied"`
		Pending []string           `json:"pending"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ledger))
	require.Len(t, ledger.Applied, 3)
	require.Empty(t, ledger.Pending)
}

func TestTableDump(t *testing.T) {
	t.Parallel()
	open := memoryOpener(kv.NewMemory())

	_, err := execute(t, open, "", "migrate")
	require.NoError(t, err)

	out, err := execute(t, open, "", "tables")
	require.NoError(t, err)
	for _, name := range repository.AllTables {
		require.Contains(t, out, name)
	}

	out, err = execute(t, open, "", "table", "users")
	require.NoError(t, err)
	var users []models.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)

	out, err = execute(t, open, "", "table", "inquiries", "--pretty")
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)

	_, err = execute(t, open, "", "table", "nope")
	require.ErrorContains(t, err, "does not exist")
}

func TestSetPassword(t *testing.T) {
	t.Parallel()
	m := kv.NewMemory()
	open := memoryOpener(m)

	out, err := execute(t, open, "new-admin-pass\n", "set-password", seed.AdminEmail)
	require.NoError(t, err)
	require.Contains(t, out, "password updated")

	store := tablestore.New(m, tablestore.DefaultPrefix, zap.NewNop())
	users := tablestore.GetTable[models.User](context.Background(), store, repository.TableUsers)
	require.Len(t, users, 1)
	require.NoError(t, auth.CheckPassword(users[0].PasswordHash, "new-admin-pass"))

	_, err = execute(t, open, "", "set-password", "ghost@example.com", "--password", "long-enough")
	require.ErrorIs(t, err, errUserNotFound)

	_, err = execute(t, open, "", "set-password", seed.AdminEmail, "--password", "short")
	require.Error(t, err)

	_, err = execute(t, open, "", "set-password", seed.AdminEmail, "--password", strings.Repeat("x", auth.MaxPasswordBytes+1))
	require.ErrorContains(t, err, "at most")
	users = tablestore.GetTable[models.User](context.Background(), store, repository.TableUsers)
	require.NoError(t, auth.CheckPassword(users[0].PasswordHash, "new-admin-pass"))
}
