// Package data is the data-access facade the HTTP layer and the CLI use. A
// Service is built once per process with Open and passed to its consumers.
package data

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nugabest/estatedb/internal/migrate"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/repository/kvstore"
	"github.com/nugabest/estatedb/internal/tablestore"
	"go.uber.org/zap"
)

// ErrPropertyNotFound is returned when a listing that does not exist is
// saved to a user's shortlist.
var ErrPropertyNotFound = errors.New("data: property not found")

type Options struct {
	LedgerKey     string
	AdminPassword string

	// Migrations overrides the default schema history. Tests use it.
	Migrations []migrate.Migration
}

type Service struct {
	store  *tablestore.Store
	runner *migrate.Runner
	logger *zap.Logger

	users        repository.UserRepository
	properties   repository.PropertyRepository
	inquiries    repository.InquiryRepository
	transactions repository.TransactionRepository
	settings     repository.SettingsRepository
	appointments repository.AppointmentRepository
	messages     repository.MessageRepository
	offers       repository.OfferRepository
}

// Open applies pending migrations and returns a ready Service. It fails only
// when the ledger cannot be read or a migration fails.
func Open(ctx context.Context, store *tablestore.Store, logger *zap.Logger, opts Options) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	migrations := opts.Migrations
	if migrations == nil {
		migrations = migrate.DefaultMigrations(migrate.Options{
			AdminPassword: opts.AdminPassword,
			Logger:        logger,
		})
	}

	runner := migrate.NewRunner(store, opts.LedgerKey, migrations, logger)
	applied, err := runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("open data service: %w", err)
	}
	if len(applied) > 0 {
		logger.Info("schema up to date", zap.Int("applied", len(applied)))
	}

	return &Service{
		store:        store,
		runner:       runner,
		logger:       logger,
		users:        kvstore.NewUserStore(store),
		properties:   kvstore.NewPropertyStore(store),
		inquiries:    kvstore.NewInquiryStore(store),
		transactions: kvstore.NewTransactionStore(store),
		settings:     kvstore.NewSettingsStore(store),
		appointments: kvstore.NewAppointmentStore(store),
		messages:     kvstore.NewMessageStore(store),
		offers:       kvstore.NewOfferStore(store),
	}, nil
}

func (s *Service) Store() *tablestore.Store { return s.store }

// Migrations returns the applied ledger.
func (s *Service) Migrations(ctx context.Context) ([]models.Migration, error) {
	return s.runner.Applied(ctx)
}

// Users

func (s *Service) QueryUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// CreateUser appends user, filling in an id, join date and lifecycle
// defaults when they are missing. Email uniqueness is the caller's check.
func (s *Service) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = kvstore.NewID("usr")
	}
	if user.JoinedDate == "" {
		user.JoinedDate = kvstore.Now()
	}
	user.Email = strings.TrimSpace(user.Email)
	if user.Status == "" {
		user.Status = models.UserActive
	}
	if user.KYCStatus == "" {
		user.KYCStatus = models.KYCUnsubmitted
	}
	if user.SubscriptionPlan == nil {
		plan := models.PlanFree
		user.SubscriptionPlan = &plan
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, user models.User) error {
	return s.users.Update(ctx, user)
}

// Properties

func (s *Service) QueryProperties(ctx context.Context) ([]models.Property, error) {
	return s.properties.List(ctx)
}

func (s *Service) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	return s.properties.GetByID(ctx, propertyID)
}

func (s *Service) QueryPropertiesByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

func (s *Service) UpsertProperty(ctx context.Context, property models.Property) error {
	return s.properties.Upsert(ctx, property)
}

func (s *Service) DeleteProperty(ctx context.Context, propertyID string) error {
	return s.properties.Delete(ctx, propertyID)
}

// Saved properties

func (s *Service) QuerySavedProperties(ctx context.Context, userID string) ([]models.Property, error) {
	return s.users.SavedProperties(ctx, userID)
}

// ToggleSaveProperty flips propertyID in the user's saved list and keeps
// the listing's save counter in step. It reports the new saved state;
// unknown users are a no-op.
func (s *Service) ToggleSaveProperty(ctx context.Context, userID, propertyID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return false, err
	}
	// Unsaving stays possible after the listing is gone so stale entries
	// can be cleared.
	if !slices.Contains(user.SavedPropertyIDs, propertyID) {
		prop, err := s.properties.GetByID(ctx, propertyID)
		if err != nil {
			return false, err
		}
		if prop == nil {
			return false, fmt.Errorf("%w: %s", ErrPropertyNotFound, propertyID)
		}
	}
	saved, err := s.users.ToggleSaved(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}

	delta := -1
	if saved {
		delta = 1
	}
	s.bumpStats(ctx, propertyID, func(st *models.PropertyStats) {
		st.Saves = max(0, st.Saves+delta)
	})
	return saved, nil
}

// RecordView counts one detail-page view of the listing.
func (s *Service) RecordView(ctx context.Context, propertyID string) {
	s.bumpStats(ctx, propertyID, func(st *models.PropertyStats) { st.Views++ })
}

// bumpStats updates listing counters. Counter writes are best effort and
// never fail the operation that triggered them.
func (s *Service) bumpStats(ctx context.Context, propertyID string, fn func(*models.PropertyStats)) {
	if propertyID == "" {
		return
	}
	if _, err := s.properties.UpdateStats(ctx, propertyID, fn); err != nil {
		s.logger.Warn("listing stats not updated", zap.String("property_id", propertyID), zap.Error(err))
	}
}

// Inquiries

func (s *Service) QueryInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *Service) CreateInquiry(ctx context.Context, inquiry models.Inquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = kvstore.NewID("inq")
	}
	if inquiry.Timestamp == "" {
		inquiry.Timestamp = kvstore.Now()
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return err
	}
	s.bumpStats(ctx, inquiry.PropertyID, func(st *models.PropertyStats) { st.Inquiries++ })
	return nil
}

// Transactions

func (s *Service) QueryTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.List(ctx)
}

func (s *Service) QueryUserTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.transactions.ListByUser(ctx, userID)
}

func (s *Service) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = kvstore.NewID("txn")
	}
	if tx.Timestamp == "" {
		tx.Timestamp = kvstore.Now()
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// Settings

func (s *Service) QuerySettings(ctx context.Context) (*models.SystemSettings, error) {
	return s.settings.Get(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, settings models.SystemSettings) error {
	return s.settings.Update(ctx, settings)
}

// Appointments, messages and offers are scoped to a participant.

func (s *Service) QueryAppointments(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.appointments.ListForUser(ctx, userID)
}

func (s *Service) UpsertAppointment(ctx context.Context, appt models.Appointment) (models.Appointment, error) {
	if appt.ID == "" {
		appt.ID = kvstore.NewID("apt")
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentPending
	}
	if err := s.appointments.Upsert(ctx, appt); err != nil {
		return models.Appointment{}, err
	}
	return appt, nil
}

func (s *Service) QueryMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	return s.messages.ListForUser(ctx, userID)
}

func (s *Service) SendMessage(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = kvstore.NewID("msg")
	}
	if msg.Timestamp == "" {
		msg.Timestamp = kvstore.Now()
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

func (s *Service) QueryOffers(ctx context.Context, userID string) ([]models.Offer, error) {
	return s.offers.ListForUser(ctx, userID)
}

func (s *Service) GetOffer(ctx context.Context, offerID string) (*models.Offer, error) {
	return s.offers.GetByID(ctx, offerID)
}

func (s *Service) UpsertOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	if offer.ID == "" {
		offer.ID = kvstore.NewID("ofr")
	}
	if offer.Status == "" {
		offer.Status = models.OfferPending
	}
	if offer.Timestamp == "" {
		offer.Timestamp = kvstore.Now()
	}
	if err := s.offers.Upsert(ctx, offer); err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

func (s *Service) UpdateOfferStatus(ctx context.Context, offerID string, status models.OfferStatus) (bool, error) {
	return s.offers.UpdateStatus(ctx, offerID, status)
}
