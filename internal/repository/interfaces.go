package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
)

// AppointmentStore is the slice of the appointment repository available
// inside a caregiver-scoped critical section. Conflict check and write run
// against the same transaction so concurrent bookings for one caregiver
// serialize at the store boundary.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Update(ctx context.Context, appointment *model.Appointment) error
	FindConflicting(ctx context.Context, caregiverID uuid.UUID, start, end time.Time) ([]*model.Appointment, error)
}

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		AppointmentStore
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, organizationID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		FindByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Appointment, error)
		FindByCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*model.Appointment, error)
		FindByPeriod(ctx context.Context, start, end time.Time) ([]*model.Appointment, error)
		// WithCaregiverLock runs fn inside a transaction holding an advisory
		// lock keyed on the caregiver id.
		WithCaregiverLock(ctx context.Context, caregiverID uuid.UUID, fn func(AppointmentStore) error) error
	}

	OrganizationRepository interface {
		Create(ctx context.Context, org *model.Organization) error
		Get(ctx context.Context, id uuid.UUID) (*model.Organization, error)
		GetByName(ctx context.Context, name string) (*model.Organization, error)
		Update(ctx context.Context, org *model.Organization) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Organization, error)
		HasDependents(ctx context.Context, id uuid.UUID) (bool, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, organizationID uuid.UUID) ([]*model.User, error)
	}

	ElderlyRepository interface {
		Create(ctx context.Context, elderly *model.Elderly) error
		Get(ctx context.Context, id uuid.UUID) (*model.Elderly, error)
		Update(ctx context.Context, elderly *model.Elderly) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, organizationID uuid.UUID) ([]*model.Elderly, error)
		HasDependents(ctx context.Context, id uuid.UUID) (bool, error)
		AssignCaregiver(ctx context.Context, elderlyID, caregiverID uuid.UUID) error
		RemoveCaregiver(ctx context.Context, elderlyID, caregiverID uuid.UUID) error
		IsCaregiverAssigned(ctx context.Context, elderlyID, caregiverID uuid.UUID) (bool, error)
		ListCaregivers(ctx context.Context, elderlyID uuid.UUID) ([]*model.Caregiver, error)
	}

	CaregiverRepository interface {
		Create(ctx context.Context, caregiver *model.Caregiver) error
		Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error)
		GetByUser(ctx context.Context, userID uuid.UUID) (*model.Caregiver, error)
		Update(ctx context.Context, caregiver *model.Caregiver) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, organizationID uuid.UUID) ([]*model.Caregiver, error)
		FindBySpecialty(ctx context.Context, organizationID uuid.UUID, specialty string) ([]*model.Caregiver, error)
		ListElderly(ctx context.Context, caregiverID uuid.UUID) ([]*model.Elderly, error)
		HasAssignedElderly(ctx context.Context, caregiverID uuid.UUID) (bool, error)
	}

	FamilyMemberRepository interface {
		Create(ctx context.Context, member *model.FamilyMember) error
		Get(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, organizationID uuid.UUID) ([]*model.FamilyMember, error)
		ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.FamilyMember, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.FamilyMember, error)
		Exists(ctx context.Context, userID, elderlyID uuid.UUID) (bool, error)
	}

	DocumentRepository interface {
		Create(ctx context.Context, doc *model.Document) error
		Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Document, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		Update(ctx context.Context, medication *model.Medication) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Medication, error)
	}

	MedicalHistoryRepository interface {
		Create(ctx context.Context, entry *model.MedicalHistory) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.MedicalHistory, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*model.Notification, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus) error
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, filters *model.AuditLogFilters) ([]*model.AuditLog, error)
		DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}
)
