package kvstore

import (
	"context"
	"strings"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type PropertyStore struct {
	store *tablestore.Store
}

func NewPropertyStore(store *tablestore.Store) *PropertyStore {
	return &PropertyStore{store: store}
}

func propertyID(p models.Property) string { return p.ID }

func validateProperty(p models.Property) error {
	if p.ID == "" {
		return invalid("property id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return invalid("property %s: title is required", p.ID)
	}
	if !p.Type.Valid() {
		return invalid("property %s: unknown listing type %q", p.ID, p.Type)
	}
	if !p.Category.Valid() {
		return invalid("property %s: unknown category %q", p.ID, p.Category)
	}
	if p.Price < 0 {
		return invalid("property %s: negative price", p.ID)
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("property %s: unknown status %q", p.ID, *p.Status)
	}
	return nil
}

func (s *PropertyStore) List(ctx context.Context) ([]models.Property, error) {
	return load[models.Property](ctx, s.store, repository.TableProperties)
}

func (s *PropertyStore) GetByID(ctx context.Context, id string) (*models.Property, error) {
	props, err := load[models.Property](ctx, s.store, repository.TableProperties)
	if err != nil {
		return nil, err
	}
	if i := indexOf(props, id, propertyID); i >= 0 {
		return &props[i], nil
	}
	return nil, nil
}

func (s *PropertyStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	props, err := load[models.Property](ctx, s.store, repository.TableProperties)
	if err != nil {
		return nil, err
	}
	return filter(props, func(p models.Property) bool { return p.OwnerID == ownerID }), nil
}

func (s *PropertyStore) Upsert(ctx context.Context, property models.Property) error {
	if err := validateProperty(property); err != nil {
		return err
	}
	_, err := mutate(ctx, s.store, repository.TableProperties, func(props []models.Property) ([]models.Property, bool, error) {
		return upsert(props, property, propertyID, true), true, nil
	})
	return err
}

func (s *PropertyStore) Delete(ctx context.Context, id string) error {
	_, err := mutate(ctx, s.store, repository.TableProperties, func(props []models.Property) ([]models.Property, bool, error) {
		next, removed := without(props, id, propertyID)
		return next, removed, nil
	})
	return err
}

func (s *PropertyStore) UpdateStats(ctx context.Context, id string, fn func(*models.PropertyStats)) (bool, error) {
	return mutate(ctx, s.store, repository.TableProperties, func(props []models.Property) ([]models.Property, bool, error) {
		i := indexOf(props, id, propertyID)
		if i < 0 {
			return props, false, nil
		}
		if props[i].Stats == nil {
			props[i].Stats = &models.PropertyStats{}
		}
		fn(props[i].Stats)
		return props, true, nil
	})
}
