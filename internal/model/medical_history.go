package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalHistory is a dated clinical condition entry for an elderly person.
type MedicalHistory struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	ElderlyID      uuid.UUID `json:"elderly_id" db:"elderly_id"`
	Condition      string    `json:"condition" db:"condition"`
	DateRecorded   time.Time `json:"date_recorded" db:"date_recorded"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type CreateMedicalHistoryRequest struct {
	ElderlyID    uuid.UUID `json:"elderly_id" binding:"required"`
	Condition    string    `json:"condition" binding:"required,max=500"`
	DateRecorded time.Time `json:"date_recorded" binding:"required"`
}
