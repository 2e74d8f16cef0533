package kvstore

import (
	"context"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type TransactionStore struct {
	store *tablestore.Store
}

func NewTransactionStore(store *tablestore.Store) *TransactionStore {
	return &TransactionStore{store: store}
}

func (s *TransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	return load[models.Transaction](ctx, s.store, repository.TableTransactions)
}

func (s *TransactionStore) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := load[models.Transaction](ctx, s.store, repository.TableTransactions)
	if err != nil {
		return nil, err
	}
	return filter(rows, func(t models.Transaction) bool { return t.UserID == userID }), nil
}

func (s *TransactionStore) Create(ctx context.Context, tx models.Transaction) error {
	switch {
	case tx.ID == "":
		return invalid("transaction id is required")
	case tx.UserID == "":
		return invalid("transaction %s: user id is required", tx.ID)
	case !tx.Type.Valid():
		return invalid("transaction %s: unknown type %q", tx.ID, tx.Type)
	case !tx.Status.Valid():
		return invalid("transaction %s: unknown status %q", tx.ID, tx.Status)
	}
	_, err := mutate(ctx, s.store, repository.TableTransactions, func(rows []models.Transaction) ([]models.Transaction, bool, error) {
		return append([]models.Transaction{tx}, rows...), true, nil
	})
	return err
}
