package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is a reference to a stored file for an elderly person. Only the
// path and type are kept here; binary storage is external.
type Document struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	ElderlyID      uuid.UUID `json:"elderly_id" db:"elderly_id"`
	FilePath       string    `json:"file_path" db:"file_path"`
	DocumentType   string    `json:"document_type" db:"document_type"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type CreateDocumentRequest struct {
	ElderlyID    uuid.UUID `json:"elderly_id" binding:"required"`
	FilePath     string    `json:"file_path" binding:"required,max=1000"`
	DocumentType string    `json:"document_type" binding:"required,max=100"`
}
