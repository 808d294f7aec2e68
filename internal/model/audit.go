package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an immutable record of a state-changing action.
type AuditLog struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Action         string    `json:"action" db:"action"`
	EntityName     string    `json:"entity_name" db:"entity_name"`
	EntityID       uuid.UUID `json:"entity_id" db:"entity_id"`
	Description    string    `json:"description" db:"description"`
	Timestamp      time.Time `json:"timestamp" db:"timestamp"`
}

const (
	// Appointment actions
	AuditActionCreateAppointment       = "CREATE_APPOINTMENT"
	AuditActionUpdateAppointment       = "UPDATE_APPOINTMENT"
	AuditActionCancelAppointment       = "CANCEL_APPOINTMENT"
	AuditActionUpdateAppointmentStatus = "UPDATE_APPOINTMENT_STATUS"
	AuditActionAddObservation          = "ADD_APPOINTMENT_OBSERVATION"

	AuditActionCreateOrganization = "CREATE_ORGANIZATION"
	AuditActionUpdateOrganization = "UPDATE_ORGANIZATION"
	AuditActionDeleteOrganization = "DELETE_ORGANIZATION"

	AuditActionCreateUser     = "CREATE_USER"
	AuditActionUpdateUser     = "UPDATE_USER"
	AuditActionDeleteUser     = "DELETE_USER"
	AuditActionChangePassword = "CHANGE_PASSWORD"

	AuditActionCreateElderly   = "CREATE_ELDERLY"
	AuditActionUpdateElderly   = "UPDATE_ELDERLY"
	AuditActionDeleteElderly   = "DELETE_ELDERLY"
	AuditActionAssignCaregiver = "ASSIGN_CAREGIVER"
	AuditActionRemoveCaregiver = "REMOVE_CAREGIVER"

	AuditActionCreateCaregiver = "CREATE_CAREGIVER"
	AuditActionUpdateCaregiver = "UPDATE_CAREGIVER"
	AuditActionDeleteCaregiver = "DELETE_CAREGIVER"

	AuditActionCreateFamilyMember = "CREATE_FAMILY_MEMBER"
	AuditActionDeleteFamilyMember = "DELETE_FAMILY_MEMBER"

	AuditActionUploadDocument = "UPLOAD_DOCUMENT"
	AuditActionDeleteDocument = "DELETE_DOCUMENT"

	AuditActionCreateMedication = "CREATE_MEDICATION"
	AuditActionUpdateMedication = "UPDATE_MEDICATION"
	AuditActionDeleteMedication = "DELETE_MEDICATION"

	AuditActionCreateMedicalHistory = "CREATE_MEDICAL_HISTORY"
	AuditActionDeleteMedicalHistory = "DELETE_MEDICAL_HISTORY"

	AuditActionSendNotification = "SEND_NOTIFICATION"
	AuditActionReadNotification = "READ_NOTIFICATION"

	// Entity names
	AuditEntityAppointment   = "Appointment"
	AuditEntityOrganization  = "Organization"
	AuditEntityUser          = "User"
	AuditEntityElderly       = "Elderly"
	AuditEntityCaregiver     = "Caregiver"
	AuditEntityFamilyMember  = "FamilyMember"
	AuditEntityDocument      = "Document"
	AuditEntityMedication    = "Medication"
	AuditEntityMedicalRecord = "MedicalHistory"
	AuditEntityNotification  = "Notification"
)

type AuditLogFilters struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Action         string
	EntityName     string
	StartDate      time.Time
	EndDate        time.Time
}
