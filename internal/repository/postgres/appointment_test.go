package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, repository.AppointmentRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewAppointmentRepository(sqlxDB)

	return sqlxDB, mock, repo
}

func appointmentRows(appointments ...*model.Appointment) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "organization_id", "elderly_id", "caregiver_id",
		"date_time", "duration_minutes", "description", "status", "created_at",
	})
	for _, a := range appointments {
		rows.AddRow(a.ID, a.OrganizationID, a.ElderlyID, a.CaregiverID,
			a.DateTime, a.DurationMinutes, a.Description, a.Status, a.CreatedAt)
	}
	return rows
}

func sampleAppointment() *model.Appointment {
	return &model.Appointment{
		ID:              uuid.New(),
		OrganizationID:  uuid.New(),
		ElderlyID:       uuid.New(),
		CaregiverID:     uuid.New(),
		DateTime:        time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Description:     "routine checkup",
		Status:          model.AppointmentStatusScheduled,
		CreatedAt:       time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestAppointmentGet(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	want := sampleAppointment()

	mock.ExpectQuery(`SELECT`).
		WithArgs(want.ID).
		WillReturnRows(appointmentRows(want))

	got, err := repo.Get(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.CaregiverID, got.CaregiverID)
	assert.Equal(t, model.AppointmentStatusScheduled, got.Status)
	assert.Equal(t, 60, got.DurationMinutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentGetNotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(`SELECT`).
		WithArgs(id).
		WillReturnRows(appointmentRows())

	_, err := repo.Get(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreate(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	a := sampleAppointment()

	mock.ExpectExec(`INSERT INTO appointments`).
		WithArgs(a.ID, a.OrganizationID, a.ElderlyID, a.CaregiverID,
			a.DateTime, a.DurationMinutes, a.Description, a.Status, a.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateNotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	a := sampleAppointment()

	mock.ExpectExec(`UPDATE appointments`).
		WithArgs(a.DateTime, a.DurationMinutes, a.Description, a.Status, a.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), a)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictingQueriesCaregiverWindow(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	existing := sampleAppointment()
	start := existing.DateTime.Add(-30 * time.Minute)
	end := start.Add(60 * time.Minute)

	mock.ExpectQuery(`FROM appointments`).
		WithArgs(existing.CaregiverID, start, end).
		WillReturnRows(appointmentRows(existing))

	conflicts, err := repo.FindConflicting(context.Background(), existing.CaregiverID, start, end)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, existing.ID, conflicts[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithCaregiverLockCommits(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	a := sampleAppointment()

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).
		WithArgs(a.CaregiverID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO appointments`).
		WithArgs(a.ID, a.OrganizationID, a.ElderlyID, a.CaregiverID,
			a.DateTime, a.DurationMinutes, a.Description, a.Status, a.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithCaregiverLock(context.Background(), a.CaregiverID, func(store repository.AppointmentStore) error {
		return store.Create(context.Background(), a)
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithCaregiverLockRollsBackOnError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	caregiverID := uuid.New()
	boom := errors.New("conflict detected")

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).
		WithArgs(caregiverID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.WithCaregiverLock(context.Background(), caregiverID, func(store repository.AppointmentStore) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
