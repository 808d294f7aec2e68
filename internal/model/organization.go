package model

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant every other record belongs to.
type Organization struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Domain    string    `json:"domain" db:"domain"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateOrganizationRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Domain string `json:"domain" binding:"required,fqdn,max=255"`
}

type UpdateOrganizationRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Domain string `json:"domain" binding:"required,fqdn,max=255"`
}
