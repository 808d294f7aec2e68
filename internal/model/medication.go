package model

import (
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	ElderlyID      uuid.UUID `json:"elderly_id" db:"elderly_id"`
	Name           string    `json:"name" db:"name"`
	Dosage         string    `json:"dosage" db:"dosage"`
	Frequency      string    `json:"frequency" db:"frequency"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type CreateMedicationRequest struct {
	ElderlyID uuid.UUID `json:"elderly_id" binding:"required"`
	Name      string    `json:"name" binding:"required,max=255"`
	Dosage    string    `json:"dosage" binding:"required,max=100"`
	Frequency string    `json:"frequency" binding:"required,max=100"`
}

type UpdateMedicationRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Dosage    string `json:"dosage" binding:"required,max=100"`
	Frequency string `json:"frequency" binding:"required,max=100"`
}
