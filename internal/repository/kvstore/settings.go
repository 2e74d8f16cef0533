package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type SettingsStore struct {
	store *tablestore.Store
}

func NewSettingsStore(store *tablestore.Store) *SettingsStore {
	return &SettingsStore{store: store}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.SystemSettings, error) {
	settings, err := tablestore.ReadRecord[models.SystemSettings](ctx, s.store, repository.TableSettings)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsStore) Update(ctx context.Context, settings models.SystemSettings) error {
	if strings.TrimSpace(settings.PlatformName) == "" {
		return invalid("settings: platform name is required")
	}
	if settings.CommissionRate < 0 || settings.CommissionRate > 100 {
		return invalid("settings: commission rate %v out of range", settings.CommissionRate)
	}
	if err := tablestore.SaveRecord(ctx, s.store, repository.TableSettings, settings); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
