package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/nugabest/estatedb/internal/auth"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/seed"
	"github.com/nugabest/estatedb/internal/tablestore"
	"go.uber.org/zap"
)

type Options struct {
	// AdminPassword is hashed into the seeded admin account. When empty a
	// random password is used and the admin must reset it with the CLI.
	AdminPassword string
	Logger        *zap.Logger
}

// DefaultMigrations is the schema history of the listings store. Each step
// overwrites whole tables so re-running a step that failed halfway never
// duplicates rows.
func DefaultMigrations(opts Options) []Migration {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return []Migration{
		{Version: 1, Name: "Initial Schema Setup", Up: initialSchema(opts.AdminPassword, logger)},
		{Version: 2, Name: "Analytics Layer Integration", Up: analyticsLayer},
		{Version: 3, Name: "Account Lifecycle Fields", Up: accountLifecycle},
	}
}

func initialSchema(adminPassword string, logger *zap.Logger) func(context.Context, *tablestore.Store) error {
	return func(ctx context.Context, s *tablestore.Store) error {
		password := adminPassword
		if password == "" {
			generated, err := auth.RandomSecret(24)
			if err != nil {
				return err
			}
			password = generated
			logger.Warn("ADMIN_PASSWORD not set, seeded admin has a random password",
				zap.String("email", seed.AdminEmail),
				zap.String("reset", "nugadb set-password "+seed.AdminEmail),
			)
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		admin := models.User{
			ID:           seed.AdminID,
			Email:        seed.AdminEmail,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Name:         seed.AdminName,
			JoinedDate:   time.Now().UTC().Format(time.RFC3339),
			Verified:     true,
		}
		if err := tablestore.SaveTable(ctx, s, repository.TableUsers, []models.User{admin}); err != nil {
			return err
		}
		if err := tablestore.SaveTable(ctx, s, repository.TableProperties, seed.Properties()); err != nil {
			return err
		}
		empty := []string{
			repository.TableInquiries,
			repository.TableTransactions,
			repository.TableAppointments,
			repository.TableMessages,
			repository.TableOffers,
		}
		for _, name := range empty {
			if err := tablestore.SaveTable(ctx, s, name, []struct{}{}); err != nil {
				return fmt.Errorf("create %s: %w", name, err)
			}
		}
		return tablestore.SaveRecord(ctx, s, repository.TableSettings, seed.Settings())
	}
}

// analyticsLayer gives every listing stats counters, a moderation status
// and an owner.
func analyticsLayer(ctx context.Context, s *tablestore.Store) error {
	return tablestore.Update(ctx, s, repository.TableProperties, func(props []models.Property) ([]models.Property, error) {
		approved := models.ListingApproved
		for i := range props {
			if props[i].Stats == nil {
				props[i].Stats = &models.PropertyStats{}
			}
			if props[i].Status == nil {
				status := approved
				props[i].Status = &status
			}
			if props[i].OwnerID == "" {
				props[i].OwnerID = seed.AdminID
			}
		}
		return props, nil
	})
}

func accountLifecycle(ctx context.Context, s *tablestore.Store) error {
	return tablestore.Update(ctx, s, repository.TableUsers, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Status == "" {
				users[i].Status = models.UserActive
			}
			if users[i].KYCStatus == "" {
				users[i].KYCStatus = models.KYCUnsubmitted
				if users[i].Role == models.RoleAdmin {
					users[i].KYCStatus = models.KYCVerified
				}
			}
			if users[i].SubscriptionPlan == nil {
				plan := models.PlanFree
				users[i].SubscriptionPlan = &plan
			}
		}
		return users, nil
	})
}
