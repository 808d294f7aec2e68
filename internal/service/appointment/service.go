package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

// ConflictWindowMinutes is the slot every existing booking is assumed to
// occupy when checking for collisions, regardless of its stored duration.
// Inherited contract: candidate windows use the caller-supplied duration,
// existing bookings always count as 60 minutes.
const ConflictWindowMinutes = 60

// DefaultDurationMinutes is assigned when a caller does not supply one.
const DefaultDurationMinutes = 60

type Service struct {
	repo          repository.AppointmentRepository
	elderlyRepo   repository.ElderlyRepository
	caregiverRepo repository.CaregiverRepository
	auditor       *audit.Service
}

func NewService(repo repository.AppointmentRepository, elderlyRepo repository.ElderlyRepository, caregiverRepo repository.CaregiverRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:          repo,
		elderlyRepo:   elderlyRepo,
		caregiverRepo: caregiverRepo,
		auditor:       auditor,
	}
}

// Create books a caregiver to an elderly person. The conflict check and the
// insert run inside one caregiver-scoped critical section so two concurrent
// bookings for the same caregiver cannot both pass a stale check.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	elderly, err := s.elderlyRepo.Get(ctx, req.ElderlyID)
	if err != nil {
		return nil, err
	}

	if _, err := s.caregiverRepo.Get(ctx, req.CaregiverID); err != nil {
		return nil, err
	}

	if !req.DateTime.After(time.Now()) {
		return nil, apperrors.Validation("appointment date and time must be in the future")
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	appointment := &model.Appointment{
		ID:              uuid.New(),
		OrganizationID:  actor.OrganizationID,
		ElderlyID:       req.ElderlyID,
		CaregiverID:     req.CaregiverID,
		DateTime:        req.DateTime,
		DurationMinutes: duration,
		Description:     req.Description,
		Status:          model.AppointmentStatusScheduled,
		CreatedAt:       time.Now(),
	}

	err = s.repo.WithCaregiverLock(ctx, req.CaregiverID, func(store repository.AppointmentStore) error {
		conflict, err := hasConflict(ctx, store, req.CaregiverID, req.DateTime, ConflictWindowMinutes, nil)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.Conflict("the caregiver already has a booking in the requested period")
		}
		return store.Create(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionCreateAppointment, model.AuditEntityAppointment, appointment.ID,
		fmt.Sprintf("Appointment created for elderly: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, actor model.Actor, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, actor.OrganizationID, filters)
}

// Update applies the only two mutable fields, date/time and description.
// When the slot moves, the future-date and conflict checks run again with
// the appointment's own id excluded from the conflict set.
func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status.Terminal() {
		return nil, apperrors.InvalidState("cannot update cancelled or completed appointments")
	}

	dateChanged := !appointment.DateTime.Equal(req.DateTime)
	if dateChanged && !req.DateTime.After(time.Now()) {
		return nil, apperrors.Validation("appointment date and time must be in the future")
	}

	appointment.DateTime = req.DateTime
	if req.Description != nil {
		appointment.Description = *req.Description
	}

	if dateChanged {
		excludeID := appointment.ID
		err = s.repo.WithCaregiverLock(ctx, appointment.CaregiverID, func(store repository.AppointmentStore) error {
			conflict, err := hasConflict(ctx, store, appointment.CaregiverID, req.DateTime, ConflictWindowMinutes, &excludeID)
			if err != nil {
				return err
			}
			if conflict {
				return apperrors.Conflict("the caregiver already has a booking in the requested period")
			}
			return store.Update(ctx, appointment)
		})
	} else {
		err = s.repo.Update(ctx, appointment)
	}
	if err != nil {
		return nil, err
	}

	elderly, err := s.elderlyRepo.Get(ctx, appointment.ElderlyID)
	if err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionUpdateAppointment, model.AuditEntityAppointment, appointment.ID,
		fmt.Sprintf("Appointment updated for elderly: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return appointment, nil
}

// Cancel is the only deletion path; the record stays, the status flips.
func (s *Service) Cancel(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == model.AppointmentStatusCompleted {
		return nil, apperrors.InvalidState("cannot cancel an appointment that is already completed")
	}
	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.InvalidState("this appointment is already cancelled")
	}

	appointment.Status = model.AppointmentStatusCancelled
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionCancelAppointment, model.AuditEntityAppointment, appointment.ID,
		fmt.Sprintf("Appointment cancelled: %s", appointment.ID)); err != nil {
		return nil, err
	}

	return appointment, nil
}

// UpdateStatus moves the appointment through its lifecycle. Transitions only
// move forward; completed and cancelled are terminal.
func (s *Service) UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown appointment status: %s", status))
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(appointment.Status, status); err != nil {
		return nil, err
	}

	appointment.Status = status
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionUpdateAppointmentStatus, model.AuditEntityAppointment, appointment.ID,
		fmt.Sprintf("Appointment status updated to: %s", status)); err != nil {
		return nil, err
	}

	return appointment, nil
}

// AddObservation appends a timestamped note to the appointment description.
func (s *Service) AddObservation(ctx context.Context, actor model.Actor, id uuid.UUID, observation string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.InvalidState("cannot add observations to a cancelled appointment")
	}

	if strings.TrimSpace(observation) == "" {
		return nil, apperrors.Validation("observation cannot be empty")
	}

	appointment.Description = appendObservation(appointment.Description, observation, time.Now())
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionAddObservation, model.AuditEntityAppointment, appointment.ID,
		"Observation added to appointment"); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (s *Service) FindByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.FindByElderly(ctx, elderlyID)
}

func (s *Service) FindByCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.FindByCaregiver(ctx, caregiverID)
}

func (s *Service) FindByPeriod(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	return s.repo.FindByPeriod(ctx, start, end)
}

// HasScheduleConflict is the read-only conflict probe exposed to callers
// that want to test a slot before committing to it. It reads outside the
// caregiver lock; the write paths re-check under the lock.
func (s *Service) HasScheduleConflict(ctx context.Context, caregiverID uuid.UUID, dateTime time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error) {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	return hasConflict(ctx, s.repo, caregiverID, dateTime, durationMinutes, excludeID)
}

// hasConflict computes the candidate window from the caller-supplied
// duration, fetches overlapping non-cancelled bookings and filters out the
// excluded appointment, if any. Pure read; no side effects.
func hasConflict(ctx context.Context, store repository.AppointmentStore, caregiverID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	conflicting, err := store.FindConflicting(ctx, caregiverID, start, end)
	if err != nil {
		return false, err
	}

	if excludeID != nil {
		filtered := conflicting[:0]
		for _, apt := range conflicting {
			if apt.ID != *excludeID {
				filtered = append(filtered, apt)
			}
		}
		conflicting = filtered
	}

	return len(conflicting) > 0, nil
}

func validateCreateRequest(req *model.CreateAppointmentRequest) error {
	if req.ElderlyID == uuid.Nil {
		return apperrors.Validation("the appointment elderly is required")
	}
	if req.CaregiverID == uuid.Nil {
		return apperrors.Validation("the appointment caregiver is required")
	}
	if req.DateTime.IsZero() {
		return apperrors.Validation("the appointment date and time are required")
	}
	return nil
}
