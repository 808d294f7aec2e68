package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

const appointmentColumns = `
	id, organization_id, elderly_id, caregiver_id,
	date_time, duration_minutes, description, status, created_at
`

// appointmentStore runs against either the pooled connection or an open
// transaction, so the same queries serve both the plain and the locked path.
type appointmentStore struct {
	ext sqlx.ExtContext
}

type appointmentRepository struct {
	appointmentStore
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{
		appointmentStore: appointmentStore{ext: db},
		db:               db,
	}
}

func (s *appointmentStore) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, organization_id, elderly_id, caregiver_id,
			date_time, duration_minutes, description, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.ext.ExecContext(ctx, query,
		appointment.ID,
		appointment.OrganizationID,
		appointment.ElderlyID,
		appointment.CaregiverID,
		appointment.DateTime,
		appointment.DurationMinutes,
		appointment.Description,
		appointment.Status,
		appointment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (s *appointmentStore) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET date_time = $1, duration_minutes = $2, description = $3, status = $4
		WHERE id = $5
	`
	result, err := s.ext.ExecContext(ctx, query,
		appointment.DateTime,
		appointment.DurationMinutes,
		appointment.Description,
		appointment.Status,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("appointment not found with id: %s", appointment.ID)
	}

	return nil
}

// FindConflicting returns non-cancelled appointments for the caregiver whose
// slot collides with the [start, end] candidate window. An existing booking
// counts as occupying exactly 60 minutes from its start regardless of its
// stored duration; this is the documented legacy contract.
func (s *appointmentStore) FindConflicting(ctx context.Context, caregiverID uuid.UUID, start, end time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE caregiver_id = $1
		AND status != 'cancelled'
		AND (
			(date_time >= $2 AND date_time <= $3)
			OR (date_time <= $2 AND date_time + interval '60 minutes' >= $2)
		)
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err := sqlx.SelectContext(ctx, s.ext, &appointments, query, caregiverID, start, end); err != nil {
		return nil, fmt.Errorf("failed to find conflicting appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("appointment not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, organizationID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE organization_id = $1
	`
	args := []interface{}{organizationID}
	argCount := 2

	if filters != nil {
		if filters.ElderlyID != uuid.Nil {
			query += fmt.Sprintf(" AND elderly_id = $%d", argCount)
			args = append(args, filters.ElderlyID)
			argCount++
		}
		if filters.CaregiverID != uuid.Nil {
			query += fmt.Sprintf(" AND caregiver_id = $%d", argCount)
			args = append(args, filters.CaregiverID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND date_time >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND date_time <= $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY date_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE elderly_id = $1
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, elderlyID); err != nil {
		return nil, fmt.Errorf("failed to list appointments by elderly: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE caregiver_id = $1
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, caregiverID); err != nil {
		return nil, fmt.Errorf("failed to list appointments by caregiver: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPeriod(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date_time >= $1 AND date_time <= $2
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list appointments by period: %w", err)
	}
	return appointments, nil
}

// WithCaregiverLock serializes check-and-write sections per caregiver. The
// advisory lock is transaction-scoped, so it releases on commit or rollback.
func (r *appointmentRepository) WithCaregiverLock(ctx context.Context, caregiverID uuid.UUID, fn func(repository.AppointmentStore) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, caregiverID.String()); err != nil {
			return fmt.Errorf("failed to acquire caregiver lock: %w", err)
		}
		return fn(&appointmentStore{ext: tx})
	})
}
