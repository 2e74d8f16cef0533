package kvstore

import (
	"context"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type OfferStore struct {
	store *tablestore.Store
}

func NewOfferStore(store *tablestore.Store) *OfferStore {
	return &OfferStore{store: store}
}

func offerID(o models.Offer) string { return o.ID }

func (s *OfferStore) ListForUser(ctx context.Context, userID string) ([]models.Offer, error) {
	rows, err := load[models.Offer](ctx, s.store, repository.TableOffers)
	if err != nil {
		return nil, err
	}
	return filter(rows, func(o models.Offer) bool {
		return o.BuyerID == userID || o.SellerID == userID
	}), nil
}

func (s *OfferStore) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	rows, err := load[models.Offer](ctx, s.store, repository.TableOffers)
	if err != nil {
		return nil, err
	}
	if i := indexOf(rows, id, offerID); i >= 0 {
		return &rows[i], nil
	}
	return nil, nil
}

func (s *OfferStore) Upsert(ctx context.Context, offer models.Offer) error {
	switch {
	case offer.ID == "":
		return invalid("offer id is required")
	case offer.BuyerID == "" || offer.SellerID == "":
		return invalid("offer %s: buyer and seller are required", offer.ID)
	case offer.Amount <= 0:
		return invalid("offer %s: amount must be positive", offer.ID)
	case !offer.Status.Valid():
		return invalid("offer %s: unknown status %q", offer.ID, offer.Status)
	}
	_, err := mutate(ctx, s.store, repository.TableOffers, func(rows []models.Offer) ([]models.Offer, bool, error) {
		return upsert(rows, offer, offerID, true), true, nil
	})
	return err
}

func (s *OfferStore) UpdateStatus(ctx context.Context, id string, status models.OfferStatus) (bool, error) {
	if !status.Valid() {
		return false, invalid("offer %s: unknown status %q", id, status)
	}
	return mutate(ctx, s.store, repository.TableOffers, func(rows []models.Offer) ([]models.Offer, bool, error) {
		i := indexOf(rows, id, offerID)
		if i < 0 {
			return rows, false, nil
		}
		rows[i].Status = status
		return rows, true, nil
	})
}
