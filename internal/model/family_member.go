package model

import (
	"time"

	"github.com/google/uuid"
)

type Relationship string

const (
	RelationshipChild      Relationship = "FILHO"
	RelationshipGrandchild Relationship = "NETO"
	RelationshipNephew     Relationship = "SOBRINHO"
	RelationshipOther      Relationship = "OUTRO"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipChild, RelationshipGrandchild, RelationshipNephew, RelationshipOther:
		return true
	}
	return false
}

// FamilyMember links a user with the FAMILY role to an elderly person.
type FamilyMember struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	OrganizationID uuid.UUID    `json:"organization_id" db:"organization_id"`
	UserID         uuid.UUID    `json:"user_id" db:"user_id"`
	ElderlyID      uuid.UUID    `json:"elderly_id" db:"elderly_id"`
	Relationship   Relationship `json:"relationship" db:"relationship"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

type CreateFamilyMemberRequest struct {
	UserID       uuid.UUID    `json:"user_id" binding:"required"`
	ElderlyID    uuid.UUID    `json:"elderly_id" binding:"required"`
	Relationship Relationship `json:"relationship" binding:"required,oneof=FILHO NETO SOBRINHO OUTRO"`
}
