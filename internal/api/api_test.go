package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/nugabest/estatedb/internal/assistant"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/kv"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/seed"
	"github.com/nugabest/estatedb/internal/tablestore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret        = "test-secret"
	testAdminPassword = "admin12345"
)

type testServer struct {
	router http.Handler
	svc    *data.Service
}

func newTestServer(t *testing.T, ai Assistant) *testServer {
	t.Helper()
	return newTestServerOn(t, ai, kv.NewMemory())
}

func newTestServerOn(t *testing.T, ai Assistant, m kv.Medium) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := tablestore.New(m, tablestore.DefaultPrefix, zap.NewNop())
	svc, err := data.Open(context.Background(), store, zap.NewNop(), data.Options{AdminPassword: testAdminPassword})
	require.NoError(t, err)

	return &testServer{
		router: NewRouter(Deps{Service: svc, Assistant: ai, JWTSecret: testSecret, Logger: zap.NewNop()}),
		svc:    svc,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/v1/auth/login", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[authResponse](t, w).Token
}

func (s *testServer) signup(t *testing.T, email string, role models.Role) (string, models.User) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/v1/auth/signup", gin.H{
		"email": email, "password": "hunter2hunter2", "name": "Test User", "role": role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[authResponse](t, w)
	return resp.Token, resp.User
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodGet, "/v1/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	token, user := s.signup(t, "buyer@example.com", models.RoleUser)
	require.NotEmpty(t, token)
	require.Empty(t, user.PasswordHash)
	require.Equal(t, models.UserActive, user.Status)

	w := s.do(t, http.MethodPost, "/v1/auth/signup", gin.H{
		"email": "BUYER@example.com", "password": "another-pass", "name": "Dup",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/v1/auth/login", gin.H{"email": "buyer@example.com", "password": "wrong-password"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token = s.login(t, "buyer@example.com", "hunter2hunter2")
	w = s.do(t, http.MethodGet, "/v1/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.User](t, w)
	require.Equal(t, user.ID, me.ID)
	require.NotContains(t, w.Body.String(), "passwordHash")

	stored, err := s.svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
}

func TestSignupRejectsAdminRole(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodPost, "/v1/auth/signup", gin.H{
		"email": "sneaky@example.com", "password": "hunter2hunter2", "name": "Sneaky", "role": "admin",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuspendedUserCannotLogin(t *testing.T) {
	s := newTestServer(t, nil)
	_, user := s.signup(t, "agent@example.com", models.RoleAgent)
	admin := s.login(t, seed.AdminEmail, testAdminPassword)

	w := s.do(t, http.MethodPatch, "/v1/admin/users/"+user.ID, gin.H{"status": "suspended"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/v1/auth/login", gin.H{"email": "agent@example.com", "password": "hunter2hunter2"}, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/v1/admin/users/"+user.ID, gin.H{"status": "banished"}, admin)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthAndRoleGates(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.signup(t, "user@example.com", models.RoleUser)

	w := s.do(t, http.MethodGet, "/v1/me/saved", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/v1/me/saved", nil, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/v1/admin/users", nil, token)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, "/v1/properties/1", nil, token)
	require.Equal(t, http.StatusForbidden, w.Code)

	admin := s.login(t, seed.AdminEmail, testAdminPassword)
	w = s.do(t, http.MethodGet, "/v1/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]models.User](t, w), 2)
}

func TestToggleSavedFlow(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.signup(t, "saver@example.com", models.RoleUser)

	w := s.do(t, http.MethodPost, "/v1/me/saved", gin.H{"propertyId": "3"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decode[map[string]any](t, w)["saved"])

	w = s.do(t, http.MethodGet, "/v1/me/saved", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[[]models.Property](t, w)
	require.Len(t, saved, 1)
	require.Equal(t, "3", saved[0].ID)

	w = s.do(t, http.MethodPost, "/v1/me/saved", gin.H{"propertyId": "3"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decode[map[string]any](t, w)["saved"])

	w = s.do(t, http.MethodGet, "/v1/me/saved", nil, token)
	require.Equal(t, "[]", w.Body.String())
}

func TestPropertyOwnership(t *testing.T) {
	s := newTestServer(t, nil)
	owner, ownerUser := s.signup(t, "landlord@example.com", models.RoleLandlord)
	other, _ := s.signup(t, "other@example.com", models.RoleUser)

	listing := gin.H{
		"title": "Mini Flat", "type": "To Rent", "category": "Flat",
		"price": 1200000, "currency": "₦", "location": "Surulere, Lagos",
	}
	w := s.do(t, http.MethodPut, "/v1/properties/ll-1", listing, owner)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Property](t, w)
	require.Equal(t, ownerUser.ID, created.OwnerID)
	require.Equal(t, models.ListingPending, *created.Status)

	w = s.do(t, http.MethodGet, "/v1/properties?type=To%20Rent&location=surulere", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[[]models.Property](t, w), "pending listing is hidden")
	w = s.do(t, http.MethodGet, "/v1/properties/ll-1", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/v1/properties/ll-1", nil, other)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/v1/properties/ll-1", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/v1/properties/ll-1", listing, other)
	require.Equal(t, http.StatusForbidden, w.Code)

	admin := s.login(t, seed.AdminEmail, testAdminPassword)
	w = s.do(t, http.MethodPost, "/v1/admin/properties/ll-1/approve", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/v1/properties?type=To%20Rent&location=surulere", nil, "")
	require.Len(t, decode[[]models.Property](t, w), 1)
	w = s.do(t, http.MethodGet, "/v1/properties/ll-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/v1/properties/ll-1", listing, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, models.ListingApproved, *decode[models.Property](t, w).Status, "admin edit keeps status")

	listing["price"] = 1500000
	listing["status"] = "Sold"
	w = s.do(t, http.MethodPut, "/v1/properties/ll-1", listing, owner)
	require.Equal(t, http.StatusOK, w.Code)
	edited := decode[models.Property](t, w)
	require.Equal(t, 1500000.0, edited.Price)
	require.Equal(t, models.ListingApproved, *edited.Status, "owners cannot moderate")

	w = s.do(t, http.MethodGet, "/v1/me/properties", nil, owner)
	require.Len(t, decode[[]models.Property](t, w), 1)

	w = s.do(t, http.MethodDelete, "/v1/properties/ll-1", nil, admin)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/v1/properties/ll-1", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestInquiryAndAdminListing(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/v1/inquiries", gin.H{"name": "Zee", "email": "zee@example.com", "message": "Call me"}, "")
	require.Equal(t, http.StatusAccepted, w.Code)
	w = s.do(t, http.MethodPost, "/v1/inquiries", gin.H{"name": "Zee", "email": "not-an-email", "message": "x"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	admin := s.login(t, seed.AdminEmail, testAdminPassword)
	w = s.do(t, http.MethodGet, "/v1/admin/inquiries", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	inquiries := decode[[]models.Inquiry](t, w)
	require.Len(t, inquiries, 1)
	require.Equal(t, "Call me", inquiries[0].Message)
}

func TestMaintenanceMode(t *testing.T) {
	s := newTestServer(t, nil)
	user, _ := s.signup(t, "u@example.com", models.RoleUser)
	admin := s.login(t, seed.AdminEmail, testAdminPassword)

	settings := seed.Settings()
	settings.MaintenanceMode = true
	w := s.do(t, http.MethodPut, "/v1/admin/settings", settings, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	inquiry := gin.H{"name": "Q", "email": "q@example.com", "message": "hello"}
	w = s.do(t, http.MethodPost, "/v1/inquiries", inquiry, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = s.do(t, http.MethodPost, "/v1/me/saved", gin.H{"propertyId": "1"}, user)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/v1/properties", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	admin = s.login(t, seed.AdminEmail, testAdminPassword)
	w = s.do(t, http.MethodPost, "/v1/inquiries", inquiry, admin)
	require.Equal(t, http.StatusAccepted, w.Code)

	settings.MaintenanceMode = false
	w = s.do(t, http.MethodPut, "/v1/admin/settings", settings, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/v1/inquiries", inquiry, "")
	require.Equal(t, http.StatusAccepted, w.Code)
}

func TestOfferFlow(t *testing.T) {
	s := newTestServer(t, nil)
	buyer, buyerUser := s.signup(t, "buyer@example.com", models.RoleUser)
	admin := s.login(t, seed.AdminEmail, testAdminPassword)

	w := s.do(t, http.MethodPost, "/v1/me/offers", gin.H{"propertyId": "1", "amount": 400000000}, buyer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	offer := decode[models.Offer](t, w)
	require.Equal(t, seed.AdminID, offer.SellerID)
	require.Equal(t, buyerUser.ID, offer.BuyerID)

	w = s.do(t, http.MethodPatch, "/v1/me/offers/"+offer.ID, gin.H{"status": "Accepted"}, buyer)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/v1/me/offers/"+offer.ID, gin.H{"status": "Countered"}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/me/offers", nil, buyer)
	offers := decode[[]models.Offer](t, w)
	require.Len(t, offers, 1)
	require.Equal(t, models.OfferCountered, offers[0].Status)
}

func TestAppointmentsAndMessages(t *testing.T) {
	s := newTestServer(t, nil)
	buyer, _ := s.signup(t, "buyer@example.com", models.RoleUser)
	admin := s.login(t, seed.AdminEmail, testAdminPassword)

	w := s.do(t, http.MethodPost, "/v1/me/appointments", gin.H{"propertyId": "2", "date": "2024-07-01", "time": "14:00"}, buyer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	appt := decode[models.Appointment](t, w)
	require.Equal(t, seed.AdminID, appt.AgentID)

	w = s.do(t, http.MethodPatch, "/v1/me/appointments/"+appt.ID, gin.H{"status": "Confirmed"}, buyer)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodPatch, "/v1/me/appointments/"+appt.ID, gin.H{"status": "Confirmed"}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/me/appointments", nil, admin)
	require.Len(t, decode[[]models.Appointment](t, w), 1)

	w = s.do(t, http.MethodPost, "/v1/me/messages", gin.H{"receiverId": seed.AdminID, "text": "Is parking included?"}, buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/v1/me/messages", gin.H{"receiverId": "usr_nobody", "text": "hello"}, buyer)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/v1/me/messages?with="+seed.AdminID, nil, buyer)
	require.Len(t, decode[[]models.ChatMessage](t, w), 1)
	w = s.do(t, http.MethodGet, "/v1/me/messages?limit=0", nil, buyer)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssistantGate(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Consider Ikoyi."}]}}]}`))
	}))
	defer upstream.Close()

	var svc *data.Service
	client := assistant.NewClient(
		assistant.Config{Endpoint: upstream.URL, APIKey: "k", Model: "m"},
		func(ctx context.Context) bool {
			st, err := svc.QuerySettings(ctx)
			return err == nil && st != nil && st.AIEngineEnabled
		},
		zap.NewNop(),
	)
	s := newTestServer(t, client)
	svc = s.svc

	chat := gin.H{"history": []assistant.Turn{{Role: assistant.RoleUser, Text: "Where to invest?"}}}
	w := s.do(t, http.MethodPost, "/v1/assistant/chat", chat, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Consider Ikoyi.", decode[chatResponse](t, w).Reply)

	settings := seed.Settings()
	settings.AIEngineEnabled = false
	require.NoError(t, svc.UpdateSettings(context.Background(), settings))

	w = s.do(t, http.MethodPost, "/v1/assistant/chat", chat, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// outageMedium fails reads of keys ending in the stored suffix.
type outageMedium struct {
	kv.Medium
	suffix atomic.Value
}

func (o *outageMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if suffix, _ := o.suffix.Load().(string); suffix != "" && strings.HasSuffix(key, suffix) {
		return "", false, kv.ErrUnavailable
	}
	return o.Medium.Get(ctx, key)
}

func TestStorageOutageReturns503(t *testing.T) {
	m := &outageMedium{Medium: kv.NewMemory()}
	s := newTestServerOn(t, nil, m)
	admin := s.login(t, seed.AdminEmail, testAdminPassword)

	m.suffix.Store(repository.TableProperties)
	w := s.do(t, http.MethodGet, "/v1/properties", nil, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = s.do(t, http.MethodGet, "/v1/properties/1", nil, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	m.suffix.Store(repository.TableSettings)
	inquiry := gin.H{"name": "Q", "email": "q@example.com", "message": "hello"}
	w = s.do(t, http.MethodPost, "/v1/inquiries", inquiry, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = s.do(t, http.MethodPost, "/v1/inquiries", inquiry, admin)
	require.Equal(t, http.StatusAccepted, w.Code, "admins pass the gate")

	m.suffix.Store(repository.TableUsers)
	w = s.do(t, http.MethodPost, "/v1/auth/signup", gin.H{
		"email": "new@example.com", "password": "hunter2hunter2", "name": "New",
	}, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	m.suffix.Store("")
	w = s.do(t, http.MethodGet, "/v1/properties", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decode[[]models.Property](t, w))
	s.login(t, seed.AdminEmail, testAdminPassword)
	users, err := s.svc.QueryUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestToggleSavedUnknownListing(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.signup(t, "saver@example.com", models.RoleUser)

	w := s.do(t, http.MethodPost, "/v1/me/saved", gin.H{"propertyId": "no-such-listing"}, token)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/v1/me/saved", nil, token)
	require.Empty(t, decode[[]models.Property](t, w))
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	s := newTestServer(t, nil)

	for _, password := range []string{strings.Repeat("a", 73), strings.Repeat("₦", 30)} {
		w := s.do(t, http.MethodPost, "/v1/auth/signup", gin.H{
			"email": "long@example.com", "password": password, "name": "Long",
		}, "")
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	}
}
