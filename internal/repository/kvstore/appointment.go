package kvstore

import (
	"context"

	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
)

type AppointmentStore struct {
	store *tablestore.Store
}

func NewAppointmentStore(store *tablestore.Store) *AppointmentStore {
	return &AppointmentStore{store: store}
}

func appointmentID(a models.Appointment) string { return a.ID }

func (s *AppointmentStore) ListForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	rows, err := load[models.Appointment](ctx, s.store, repository.TableAppointments)
	if err != nil {
		return nil, err
	}
	return filter(rows, func(a models.Appointment) bool {
		return a.UserID == userID || a.AgentID == userID
	}), nil
}

func (s *AppointmentStore) Upsert(ctx context.Context, appt models.Appointment) error {
	switch {
	case appt.ID == "":
		return invalid("appointment id is required")
	case appt.UserID == "" || appt.AgentID == "":
		return invalid("appointment %s: requester and agent are required", appt.ID)
	case !appt.Status.Valid():
		return invalid("appointment %s: unknown status %q", appt.ID, appt.Status)
	}
	_, err := mutate(ctx, s.store, repository.TableAppointments, func(rows []models.Appointment) ([]models.Appointment, bool, error) {
		return upsert(rows, appt, appointmentID, true), true, nil
	})
	return err
}
