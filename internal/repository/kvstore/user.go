package kvstore

import (
	"context"
	"slices"
	"strings"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type UserStore struct {
	store *tablestore.Store
}

func NewUserStore(store *tablestore.Store) *UserStore {
	return &UserStore{store: store}
}

func userID(u models.User) string { return u.ID }

func validateUser(u models.User) error {
	if u.ID == "" {
		return invalid("user id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return invalid("user %s: email is required", u.ID)
	}
	if !u.Role.Valid() {
		return invalid("user %s: unknown role %q", u.ID, u.Role)
	}
	if u.Status != "" && !u.Status.Valid() {
		return invalid("user %s: unknown status %q", u.ID, u.Status)
	}
	if u.KYCStatus != "" && !u.KYCStatus.Valid() {
		return invalid("user %s: unknown kyc status %q", u.ID, u.KYCStatus)
	}
	if u.SubscriptionPlan != nil && !u.SubscriptionPlan.Valid() {
		return invalid("user %s: unknown plan %q", u.ID, *u.SubscriptionPlan)
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	return load[models.User](ctx, s.store, repository.TableUsers)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := load[models.User](ctx, s.store, repository.TableUsers)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, id, userID); i >= 0 {
		return &users[i], nil
	}
	return nil, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := load[models.User](ctx, s.store, repository.TableUsers)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Create(ctx context.Context, user models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	_, err := mutate(ctx, s.store, repository.TableUsers, func(users []models.User) ([]models.User, bool, error) {
		if indexOf(users, user.ID, userID) >= 0 {
			return nil, false, invalid("user %s already exists", user.ID)
		}
		return append(users, user), true, nil
	})
	return err
}

func (s *UserStore) Update(ctx context.Context, user models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	_, err := mutate(ctx, s.store, repository.TableUsers, func(users []models.User) ([]models.User, bool, error) {
		i := indexOf(users, user.ID, userID)
		if i < 0 {
			return users, false, nil
		}
		users[i] = user
		return users, true, nil
	})
	return err
}

func (s *UserStore) SavedProperties(ctx context.Context, id string) ([]models.Property, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || len(user.SavedPropertyIDs) == 0 {
		return make([]models.Property, 0), nil
	}

	saved := make(map[string]struct{}, len(user.SavedPropertyIDs))
	for _, pid := range user.SavedPropertyIDs {
		saved[pid] = struct{}{}
	}
	props, err := load[models.Property](ctx, s.store, repository.TableProperties)
	if err != nil {
		return nil, err
	}
	return filter(props, func(p models.Property) bool {
		_, ok := saved[p.ID]
		return ok
	}), nil
}

func (s *UserStore) ToggleSaved(ctx context.Context, id, propertyID string) (bool, error) {
	var nowSaved bool
	_, err := mutate(ctx, s.store, repository.TableUsers, func(users []models.User) ([]models.User, bool, error) {
		i := indexOf(users, id, userID)
		if i < 0 {
			return users, false, nil
		}
		ids := users[i].SavedPropertyIDs
		if j := slices.Index(ids, propertyID); j >= 0 {
			users[i].SavedPropertyIDs = slices.Delete(slices.Clone(ids), j, j+1)
		} else {
			users[i].SavedPropertyIDs = append(slices.Clone(ids), propertyID)
			nowSaved = true
		}
		return users, true, nil
	})
	if err != nil {
		return false, err
	}
	return nowSaved, nil
}
