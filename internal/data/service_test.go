package data

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nugabest/estatedb/internal/kv"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/seed"
	"github.com/nugabest/estatedb/internal/tablestore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// outageMedium fails every read of keys ending in suffix while down is set.
type outageMedium struct {
	kv.Medium
	suffix string
	down   atomic.Bool
}

func (o *outageMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if o.down.Load() && strings.HasSuffix(key, o.suffix) {
		return "", false, fmt.Errorf("%w: connection reset", kv.ErrUnavailable)
	}
	return o.Medium.Get(ctx, key)
}

func openService(t *testing.T, m kv.Medium) *Service {
	t.Helper()
	store := tablestore.New(m, tablestore.DefaultPrefix, zap.NewNop())
	svc, err := Open(context.Background(), store, zap.NewNop(), Options{AdminPassword: "admin12345"})
	require.NoError(t, err)
	return svc
}

func TestOpenSeedsExactlyOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := kv.NewMemory()

	svc := openService(t, m)
	users, err := svc.QueryUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, models.RoleAdmin, users[0].Role)

	props, err := svc.QueryProperties(ctx)
	require.NoError(t, err)
	require.Len(t, props, len(seed.Properties()))

	svc = openService(t, m)
	users, err = svc.QueryUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	ledger, err := svc.Migrations(ctx)
	require.NoError(t, err)
	seen := map[int]int{}
	for _, e := range ledger {
		seen[e.Version]++
	}
	for v, n := range seen {
		require.Equal(t, 1, n, "version %d recorded %d times", v, n)
	}
}

func TestConcurrentOpenOnSharedStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := tablestore.New(kv.NewMemory(), tablestore.DefaultPrefix, zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Open(ctx, store, nil, Options{AdminPassword: "admin12345"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	users := tablestore.GetTable[models.User](ctx, store, repository.TableUsers)
	require.Len(t, users, 1)
}

func TestCreateInquiryPrepends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := openService(t, kv.NewMemory())

	require.NoError(t, svc.CreateInquiry(ctx, models.Inquiry{ID: "inq_1", Name: "A", Email: "a@example.com", Message: "first"}))
	require.NoError(t, svc.CreateInquiry(ctx, models.Inquiry{
		ID: "inq_x", Name: "X", Email: "x@example.com", Message: "Is it still available?",
		Timestamp: "2024-06-01T10:00:00Z", PropertyID: "1",
	}))

	inquiries, err := svc.QueryInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, inquiries, 2)
	require.Equal(t, "inq_x", inquiries[0].ID)
	require.Equal(t, "2024-06-01T10:00:00Z", inquiries[0].Timestamp)
	require.NotEmpty(t, inquiries[1].Timestamp)

	p, err := svc.GetProperty(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 1, p.Stats.Inquiries)
}

func TestUpsertThenDeleteProperty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := openService(t, kv.NewMemory())

	before, err := svc.QueryProperties(ctx)
	require.NoError(t, err)

	p := models.Property{
		ID: "new-1", Title: "Garden Terrace", Type: models.ToRent, Category: models.CategoryFlat,
		Price: 4500000, Currency: seed.Currency, Location: "Yaba, Lagos", PostedDate: "Just now",
	}
	require.NoError(t, svc.UpsertProperty(ctx, p))

	after, err := svc.QueryProperties(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	require.Equal(t, p, after[0])

	require.NoError(t, svc.DeleteProperty(ctx, "new-1"))
	require.NoError(t, svc.DeleteProperty(ctx, "new-1"))

	final, err := svc.QueryProperties(ctx)
	require.NoError(t, err)
	require.Equal(t, before, final)
}

func TestToggleSavePropertyTracksCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := openService(t, kv.NewMemory())

	saved, err := svc.ToggleSaveProperty(ctx, seed.AdminID, "2")
	require.NoError(t, err)
	require.True(t, saved)

	list, err := svc.QuerySavedProperties(ctx, seed.AdminID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, list[0].Stats.Saves)

	saved, err = svc.ToggleSaveProperty(ctx, seed.AdminID, "2")
	require.NoError(t, err)
	require.False(t, saved)

	list, err = svc.QuerySavedProperties(ctx, seed.AdminID)
	require.NoError(t, err)
	require.Empty(t, list)

	p, err := svc.GetProperty(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, 0, p.Stats.Saves)

	saved, err = svc.ToggleSaveProperty(ctx, "usr_missing", "2")
	require.NoError(t, err)
	require.False(t, saved)
}

func TestCreateUserDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := openService(t, kv.NewMemory())

	u, err := svc.CreateUser(ctx, models.User{Email: " ada@example.com ", Role: models.RoleAgent, Name: "Ada"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, models.UserActive, u.Status)
	require.Equal(t, models.PlanFree, *u.SubscriptionPlan)

	found, err := svc.FindUserByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, found.ID)

	u.Status = models.UserSuspended
	require.NoError(t, svc.UpdateUser(ctx, u))
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, models.UserSuspended, got.Status)
}

func TestSettingsAndScopedQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := openService(t, kv.NewMemory())

	settings, err := svc.QuerySettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	settings.MaintenanceMode = true
	require.NoError(t, svc.UpdateSettings(ctx, *settings))
	settings, err = svc.QuerySettings(ctx)
	require.NoError(t, err)
	require.True(t, settings.MaintenanceMode)

	_, err = svc.UpsertAppointment(ctx, models.Appointment{PropertyID: "1", UserID: "u1", AgentID: "u2", Date: "2024-05-01", Time: "09:00"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, models.ChatMessage{SenderID: "u2", ReceiverID: "u1", Text: "See you then"})
	require.NoError(t, err)
	offer, err := svc.UpsertOffer(ctx, models.Offer{PropertyID: "1", BuyerID: "u1", SellerID: "u2", Amount: 1000, Currency: seed.Currency})
	require.NoError(t, err)
	require.Equal(t, models.OfferPending, offer.Status)

	for _, user := range []string{"u1", "u2"} {
		appts, err := svc.QueryAppointments(ctx, user)
		require.NoError(t, err)
		require.Len(t, appts, 1, user)
		msgs, err := svc.QueryMessages(ctx, user)
		require.NoError(t, err)
		require.Len(t, msgs, 1, user)
		offers, err := svc.QueryOffers(ctx, user)
		require.NoError(t, err)
		require.Len(t, offers, 1, user)
	}

	ok, err := svc.UpdateOfferStatus(ctx, offer.ID, models.OfferCountered)
	require.NoError(t, err)
	require.True(t, ok)

	tx, err := svc.CreateTransaction(ctx, models.Transaction{
		UserID: "u1", Amount: 25000, Currency: seed.Currency,
		Type: models.TxListingBoost, Status: models.TxCompleted, Description: "Boost",
	})
	require.NoError(t, err)
	all, err := svc.QueryTransactions(ctx)
	require.NoError(t, err)
	require.Equal(t, tx.ID, all[0].ID)
}

func TestStorageFailureIsSurfaced(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := kv.NewMemoryWithQuota(1 << 20)
	svc := openService(t, m)

	big := make([]string, 0, 100000)
	for i := range 100000 {
		big = append(big, fmt.Sprintf("amenity-%05d", i))
	}
	p := models.Property{
		ID: "huge", Title: "Huge", Type: models.ForSale, Category: models.CategoryLand,
		Price: 1, Currency: seed.Currency, Amenities: big,
	}
	err := svc.UpsertProperty(ctx, p)
	require.ErrorIs(t, err, tablestore.ErrStorageUnavailable)
	require.ErrorIs(t, err, kv.ErrQuotaExceeded)

	got, err := svc.GetProperty(ctx, "huge")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestReadOutageNeverOverwritesTables(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := &outageMedium{Medium: kv.NewMemory(), suffix: repository.TableProperties}
	svc := openService(t, m)

	m.down.Store(true)
	_, err := svc.QueryProperties(ctx)
	require.ErrorIs(t, err, tablestore.ErrStorageUnavailable)
	_, err = svc.GetProperty(ctx, "1")
	require.ErrorIs(t, err, tablestore.ErrStorageUnavailable)

	err = svc.UpsertProperty(ctx, models.Property{
		ID: "p_new", Title: "New", Type: models.ForSale, Category: models.CategoryLand,
		Price: 1, Currency: seed.Currency,
	})
	require.ErrorIs(t, err, tablestore.ErrStorageUnavailable)
	require.ErrorIs(t, svc.DeleteProperty(ctx, "1"), tablestore.ErrStorageUnavailable)

	m.down.Store(false)
	props, err := svc.QueryProperties(ctx)
	require.NoError(t, err)
	require.Len(t, props, len(seed.Properties()))
}

func TestUserOutageBlocksCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := &outageMedium{Medium: kv.NewMemory(), suffix: repository.TableUsers}
	svc := openService(t, m)

	m.down.Store(true)
	u, err := svc.FindUserByEmail(ctx, seed.AdminEmail)
	require.ErrorIs(t, err, tablestore.ErrStorageUnavailable)
	require.Nil(t, u)
	_, err = svc.CreateUser(ctx, models.User{Email: "new@example.com", Name: "New", Role: models.RoleUser})
	require.ErrorIs(t, err, tablestore.ErrStorageUnavailable)

	m.down.Store(false)
	users, err := svc.QueryUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, seed.AdminID, users[0].ID)
}

func TestToggleSaveUnknownProperty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := openService(t, kv.NewMemory())

	saved, err := svc.ToggleSaveProperty(ctx, seed.AdminID, "no-such-listing")
	require.ErrorIs(t, err, ErrPropertyNotFound)
	require.False(t, saved)

	admin, err := svc.GetUser(ctx, seed.AdminID)
	require.NoError(t, err)
	require.Empty(t, admin.SavedPropertyIDs)

	// A saved listing that was deleted can still be unsaved.
	saved, err = svc.ToggleSaveProperty(ctx, seed.AdminID, "4")
	require.NoError(t, err)
	require.True(t, saved)
	require.NoError(t, svc.DeleteProperty(ctx, "4"))
	saved, err = svc.ToggleSaveProperty(ctx, seed.AdminID, "4")
	require.NoError(t, err)
	require.False(t, saved)
}
