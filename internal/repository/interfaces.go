package repository

import (
	"context"
	"errors"

	"github.com/nugabest/estatedb/internal/models"
)

// Table names as they appear (after the store prefix) in the medium.
const (
	TableUsers        = "users"
	TableProperties   = "properties"
	TableInquiries    = "inquiries"
	TableTransactions = "transactions"
	TableSettings     = "system_settings"
	TableAppointments = "appointments"
	TableMessages     = "messages"
	TableOffers       = "offers"
)

// AllTables lists every entity table in creation order.
var AllTables = []string{
	TableUsers, TableProperties, TableInquiries, TableTransactions,
	TableSettings, TableAppointments, TableMessages, TableOffers,
}

// ErrInvalid is returned (wrapped) when a record fails validation on write.
var ErrInvalid = errors.New("repository: invalid record")

// Conventions shared by every repository:
//   - Reads never fail for absence: single lookups return nil, nil and list
//     calls return an empty, non-nil slice.
//   - Updates and deletes of unknown ids are no-ops.
//   - Errors are storage failures (tablestore.ErrStorageUnavailable,
//     tablestore.ErrEncode) or validation failures (ErrInvalid).

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)

	// GetByID returns nil, nil if not found.
	GetByID(ctx context.Context, userID string) (*models.User, error)

	// GetByEmail matches case-insensitively. Returns nil, nil if not found.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create appends the user. It does not check email uniqueness.
	Create(ctx context.Context, user models.User) error

	// Update replaces the stored record with the same id in place.
	Update(ctx context.Context, user models.User) error

	// SavedProperties resolves the user's saved list against the property
	// table, in property table order. Unknown users yield an empty slice.
	SavedProperties(ctx context.Context, userID string) ([]models.Property, error)

	// ToggleSaved flips propertyID in the user's saved list using the
	// currently persisted state and reports whether it is now saved.
	ToggleSaved(ctx context.Context, userID, propertyID string) (bool, error)
}

type PropertyRepository interface {
	List(ctx context.Context) ([]models.Property, error)

	// GetByID returns nil, nil if not found.
	GetByID(ctx context.Context, propertyID string) (*models.Property, error)

	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)

	// Upsert replaces in place when the id exists and prepends otherwise.
	Upsert(ctx context.Context, property models.Property) error

	// Delete removes the property. Unknown ids are a no-op.
	Delete(ctx context.Context, propertyID string) error

	// UpdateStats applies fn to the listing's counters and reports whether
	// the listing exists.
	UpdateStats(ctx context.Context, propertyID string, fn func(*models.PropertyStats)) (bool, error)
}

type InquiryRepository interface {
	// List returns newest first.
	List(ctx context.Context) ([]models.Inquiry, error)

	// Create prepends the inquiry.
	Create(ctx context.Context, inquiry models.Inquiry) error
}

type TransactionRepository interface {
	List(ctx context.Context) ([]models.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)

	// Create prepends the transaction.
	Create(ctx context.Context, tx models.Transaction) error
}

type SettingsRepository interface {
	// Get returns nil, nil when settings were never initialized.
	Get(ctx context.Context) (*models.SystemSettings, error)
	Update(ctx context.Context, settings models.SystemSettings) error
}

type AppointmentRepository interface {
	// ListForUser returns appointments where userID is the requester or the agent.
	ListForUser(ctx context.Context, userID string) ([]models.Appointment, error)
	Upsert(ctx context.Context, appointment models.Appointment) error
}

type MessageRepository interface {
	// ListForUser returns messages userID sent or received, in send order.
	ListForUser(ctx context.Context, userID string) ([]models.ChatMessage, error)

	// Create appends the message.
	Create(ctx context.Context, msg models.ChatMessage) error
}

type OfferRepository interface {
	// ListForUser returns offers where userID is the buyer or the seller.
	ListForUser(ctx context.Context, userID string) ([]models.Offer, error)
	GetByID(ctx context.Context, offerID string) (*models.Offer, error)
	Upsert(ctx context.Context, offer models.Offer) error

	// UpdateStatus changes the status of an existing offer and reports
	// whether one was found.
	UpdateStatus(ctx context.Context, offerID string, status models.OfferStatus) (bool, error)
}
