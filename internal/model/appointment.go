package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment books a caregiver to an elderly person for a time slot.
// Elderly, caregiver and organization are held as plain identifiers and
// resolved on demand; they are immutable after creation. Description is an
// append-only observation log. Appointments are never deleted: cancellation
// is a status, not a row removal.
type Appointment struct {
	ID              uuid.UUID         `db:"id" json:"id"`
	OrganizationID  uuid.UUID         `db:"organization_id" json:"organization_id"`
	ElderlyID       uuid.UUID         `db:"elderly_id" json:"elderly_id"`
	CaregiverID     uuid.UUID         `db:"caregiver_id" json:"caregiver_id"`
	DateTime        time.Time         `db:"date_time" json:"date_time"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Description     string            `db:"description" json:"description,omitempty"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	ElderlyID       uuid.UUID `json:"elderly_id" binding:"required"`
	CaregiverID     uuid.UUID `json:"caregiver_id" binding:"required"`
	DateTime        time.Time `json:"date_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=1"`
	Description     string    `json:"description" binding:"max=1000"`
}

// UpdateAppointmentRequest carries the only two mutable fields. Caregiver,
// elderly and organization cannot be changed through updates.
type UpdateAppointmentRequest struct {
	DateTime    time.Time `json:"date_time" binding:"required"`
	Description *string   `json:"description"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentObservationRequest struct {
	Observation string `json:"observation" binding:"required,max=1000"`
}

type AppointmentFilters struct {
	ElderlyID   uuid.UUID
	CaregiverID uuid.UUID
	Status      AppointmentStatus
	StartDate   time.Time
	EndDate     time.Time
}
