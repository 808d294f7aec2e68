package model

import (
	"time"

	"github.com/google/uuid"
)

// Elderly is the care recipient.
type Elderly struct {
	ID               uuid.UUID `json:"id" db:"id"`
	OrganizationID   uuid.UUID `json:"organization_id" db:"organization_id"`
	Name             string    `json:"name" db:"name"`
	BirthDate        time.Time `json:"birth_date" db:"birth_date"`
	EmergencyContact string    `json:"emergency_contact" db:"emergency_contact"`
	Address          string    `json:"address" db:"address"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type CreateElderlyRequest struct {
	Name             string    `json:"name" binding:"required,max=255"`
	BirthDate        time.Time `json:"birth_date" binding:"required"`
	EmergencyContact string    `json:"emergency_contact" binding:"max=255"`
	Address          string    `json:"address" binding:"max=500"`
}

type UpdateElderlyRequest struct {
	Name             string    `json:"name" binding:"required,max=255"`
	BirthDate        time.Time `json:"birth_date" binding:"required"`
	EmergencyContact string    `json:"emergency_contact" binding:"max=255"`
	Address          string    `json:"address" binding:"max=500"`
}
