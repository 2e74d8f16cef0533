package kvstore

import (
	"context"
	"strings"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type InquiryStore struct {
	store *tablestore.Store
}

func NewInquiryStore(store *tablestore.Store) *InquiryStore {
	return &InquiryStore{store: store}
}

func (s *InquiryStore) List(ctx context.Context) ([]models.Inquiry, error) {
	return load[models.Inquiry](ctx, s.store, repository.TableInquiries)
}

func (s *InquiryStore) Create(ctx context.Context, inquiry models.Inquiry) error {
	if inquiry.ID == "" {
		return invalid("inquiry id is required")
	}
	if strings.TrimSpace(inquiry.Email) == "" || strings.TrimSpace(inquiry.Message) == "" {
		return invalid("inquiry %s: email and message are required", inquiry.ID)
	}
	_, err := mutate(ctx, s.store, repository.TableInquiries, func(rows []models.Inquiry) ([]models.Inquiry, bool, error) {
		return append([]models.Inquiry{inquiry}, rows...), true, nil
	})
	return err
}
