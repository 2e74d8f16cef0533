package models

// Records are stored as JSON inside whole-table blobs, so the json tags are
// the persisted schema. Optional fields are pointers or omitempty slices;
// migrations backfill them when a later schema version makes them expected.

// Role is the account type a user signed up with.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleAgent     Role = "agent"
	RoleDeveloper Role = "developer"
	RoleLandlord  Role = "landlord"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleAgent, RoleDeveloper, RoleLandlord:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool { return s == UserActive || s == UserSuspended }

type KYCStatus string

const (
	KYCUnsubmitted KYCStatus = "unsubmitted"
	KYCPending     KYCStatus = "pending"
	KYCVerified    KYCStatus = "verified"
	KYCRejected    KYCStatus = "rejected"
)

func (s KYCStatus) Valid() bool {
	switch s {
	case KYCUnsubmitted, KYCPending, KYCVerified, KYCRejected:
		return true
	}
	return false
}

type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// User is an account. PasswordHash is a bcrypt hash; the raw password is
// never persisted. Email uniqueness is checked at registration only.
type User struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	PasswordHash     string            `json:"passwordHash,omitempty"`
	Role             Role              `json:"role"`
	Name             string            `json:"name"`
	JoinedDate       string            `json:"joinedDate"`
	Bio              string            `json:"bio,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	SavedPropertyIDs []string          `json:"savedPropertyIds,omitempty"`
	Status           UserStatus        `json:"status"`
	Verified         bool              `json:"verified"`
	KYCStatus        KYCStatus         `json:"kycStatus"`
	Earnings         *float64          `json:"earnings,omitempty"`
	SubscriptionPlan *SubscriptionPlan `json:"subscriptionPlan,omitempty"`
}

// Public returns a copy safe to hand to API clients.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type ListingType string

const (
	ForSale  ListingType = "For Sale"
	ToRent   ListingType = "To Rent"
	ShortLet ListingType = "Short Let"
)

func (t ListingType) Valid() bool { return t == ForSale || t == ToRent || t == ShortLet }

type Category string

const (
	CategoryHouse      Category = "House"
	CategoryFlat       Category = "Flat"
	CategoryLand       Category = "Land"
	CategoryCommercial Category = "Commercial"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHouse, CategoryFlat, CategoryLand, CategoryCommercial:
		return true
	}
	return false
}

// ModerationStatus is the admin review state of a listing.
type ModerationStatus string

const (
	ListingPending  ModerationStatus = "Pending"
	ListingApproved ModerationStatus = "Approved"
	ListingRejected ModerationStatus = "Rejected"
	ListingSold     ModerationStatus = "Sold"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case ListingPending, ListingApproved, ListingRejected, ListingSold:
		return true
	}
	return false
}

type PropertyStats struct {
	Views     int `json:"views"`
	Saves     int `json:"saves"`
	Inquiries int `json:"inquiries"`
}

type Property struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Type             ListingType       `json:"type"`
	Category         Category          `json:"category"`
	Price            float64           `json:"price"`
	Currency         string            `json:"currency"`
	Location         string            `json:"location"`
	Beds             *int              `json:"beds,omitempty"`
	Baths            *int              `json:"baths,omitempty"`
	Toilets          *int              `json:"toilets,omitempty"`
	ImageURL         string            `json:"imageUrl"`
	Featured         bool              `json:"featured"`
	PostedDate       string            `json:"postedDate"`
	SQM              *int              `json:"sqm,omitempty"`
	Description      string            `json:"description,omitempty"`
	InteriorFeatures []string          `json:"interiorFeatures,omitempty"`
	Amenities        []string          `json:"amenities,omitempty"`
	OwnerID          string            `json:"ownerId,omitempty"`
	Status           *ModerationStatus `json:"status,omitempty"`
	Stats            *PropertyStats    `json:"stats,omitempty"`
}

// Inquiry is a contact-form submission. PropertyID links it to the listing
// that prompted it when the form was opened from one.
type Inquiry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	PropertyID string `json:"propertyId,omitempty"`
}

type TransactionType string

const (
	TxSubscription TransactionType = "Subscription"
	TxCommission   TransactionType = "Commission"
	TxListingBoost TransactionType = "Listing Boost"
	TxRefund       TransactionType = "Refund"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxSubscription, TxCommission, TxListingBoost, TxRefund:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxCompleted TransactionStatus = "Completed"
	TxPending   TransactionStatus = "Pending"
	TxFailed    TransactionStatus = "Failed"
)

func (s TransactionStatus) Valid() bool {
	return s == TxCompleted || s == TxPending || s == TxFailed
}

type Transaction struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Description string            `json:"description"`
}

// SystemSettings is stored as a single record, not a sequence.
type SystemSettings struct {
	PlatformName    string  `json:"platformName"`
	LogoURL         string  `json:"logoUrl"`
	AIEngineEnabled bool    `json:"aiEngineEnabled"`
	MaintenanceMode bool    `json:"maintenanceMode"`
	GlobalCurrency  string  `json:"globalCurrency"`
	CommissionRate  float64 `json:"commissionRate"`
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a viewing requested by UserID with AgentID.
type Appointment struct {
	ID         string            `json:"id"`
	PropertyID string            `json:"propertyId"`
	UserID     string            `json:"userId"`
	AgentID    string            `json:"agentId"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
}

type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
	PropertyID string `json:"propertyId,omitempty"`
}

type OfferStatus string

const (
	OfferPending   OfferStatus = "Pending"
	OfferAccepted  OfferStatus = "Accepted"
	OfferCountered OfferStatus = "Countered"
	OfferRejected  OfferStatus = "Rejected"
)

func (s OfferStatus) Valid() bool {
	switch s {
	case OfferPending, OfferAccepted, OfferCountered, OfferRejected:
		return true
	}
	return false
}

type Offer struct {
	ID         string      `json:"id"`
	PropertyID string      `json:"propertyId"`
	BuyerID    string      `json:"buyerId"`
	SellerID   string      `json:"sellerId"`
	Amount     float64     `json:"amount"`
	Currency   string      `json:"currency"`
	Status     OfferStatus `json:"status"`
	Timestamp  string      `json:"timestamp"`
}

// Migration is one row of the applied-migrations ledger.
type Migration struct {
	Version    int    `json:"version"`
	Name       string `json:"name"`
	ExecutedAt string `json:"executedAt"`
}
