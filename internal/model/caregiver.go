package model

import (
	"time"

	"github.com/google/uuid"
)

// Caregiver is the staff profile of a user with the CAREGIVER role.
type Caregiver struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Specialty      string    `json:"specialty" db:"specialty"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type CreateCaregiverRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	Specialty string    `json:"specialty" binding:"max=255"`
}

type UpdateCaregiverRequest struct {
	Specialty string `json:"specialty" binding:"max=255"`
}

// ElderlyCaregiver links a caregiver to an elderly person they attend.
type ElderlyCaregiver struct {
	ElderlyID   uuid.UUID `json:"elderly_id" db:"elderly_id"`
	CaregiverID uuid.UUID `json:"caregiver_id" db:"caregiver_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
