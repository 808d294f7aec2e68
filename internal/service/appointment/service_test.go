package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

// fakeAppointmentRepo keeps appointments in memory and mirrors the SQL
// conflict predicate: an existing booking occupies a fixed 60-minute window
// from its start, whatever its stored duration.
type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	lockCalls    int
	failCreate   error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	if _, ok := f.appointments[a.ID]; !ok {
		return apperrors.NotFoundf("appointment not found with id: %s", a.ID)
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NotFoundf("appointment not found with id: %s", id)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) FindConflicting(_ context.Context, caregiverID uuid.UUID, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		if a.CaregiverID != caregiverID || a.Status == model.AppointmentStatusCancelled {
			continue
		}
		startsInside := !a.DateTime.Before(start) && !a.DateTime.After(end)
		coversStart := !a.DateTime.After(start) && !a.DateTime.Add(60*time.Minute).Before(start)
		if startsInside || coversStart {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByElderly(_ context.Context, elderlyID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		if a.ElderlyID == elderlyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByCaregiver(_ context.Context, caregiverID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		if a.CaregiverID == caregiverID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByPeriod(_ context.Context, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		if !a.DateTime.Before(start) && !a.DateTime.After(end) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) WithCaregiverLock(_ context.Context, _ uuid.UUID, fn func(repository.AppointmentStore) error) error {
	f.lockCalls++
	return fn(f)
}

type fakeElderlyRepo struct {
	repository.ElderlyRepository
	elderly map[uuid.UUID]*model.Elderly
}

func (f *fakeElderlyRepo) Get(_ context.Context, id uuid.UUID) (*model.Elderly, error) {
	e, ok := f.elderly[id]
	if !ok {
		return nil, apperrors.NotFoundf("elderly not found with id: %s", id)
	}
	return e, nil
}

type fakeCaregiverRepo struct {
	repository.CaregiverRepository
	caregivers map[uuid.UUID]*model.Caregiver
}

func (f *fakeCaregiverRepo) Get(_ context.Context, id uuid.UUID) (*model.Caregiver, error) {
	c, ok := f.caregivers[id]
	if !ok {
		return nil, apperrors.NotFoundf("caregiver not found with id: %s", id)
	}
	return c, nil
}

type fakeAuditRepo struct {
	logs []*model.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, log *model.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ *model.AuditLogFilters) ([]*model.AuditLog, error) {
	return f.logs, nil
}

func (f *fakeAuditRepo) DeleteBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAuditRepo) lastAction() string {
	if len(f.logs) == 0 {
		return ""
	}
	return f.logs[len(f.logs)-1].Action
}

type fixture struct {
	svc         *Service
	repo        *fakeAppointmentRepo
	auditRepo   *fakeAuditRepo
	actor       model.Actor
	elderlyID   uuid.UUID
	caregiverID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orgID := uuid.New()
	elderlyID := uuid.New()
	caregiverID := uuid.New()

	repo := newFakeAppointmentRepo()
	elderlyRepo := &fakeElderlyRepo{elderly: map[uuid.UUID]*model.Elderly{
		elderlyID: {ID: elderlyID, OrganizationID: orgID, Name: "Maria Silva"},
	}}
	caregiverRepo := &fakeCaregiverRepo{caregivers: map[uuid.UUID]*model.Caregiver{
		caregiverID: {ID: caregiverID, OrganizationID: orgID},
	}}
	auditRepo := &fakeAuditRepo{}

	return &fixture{
		svc:         NewService(repo, elderlyRepo, caregiverRepo, audit.NewService(auditRepo)),
		repo:        repo,
		auditRepo:   auditRepo,
		actor:       model.Actor{UserID: uuid.New(), OrganizationID: orgID, Role: model.RoleAdmin},
		elderlyID:   elderlyID,
		caregiverID: caregiverID,
	}
}

func (f *fixture) createRequest(dateTime time.Time) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ElderlyID:   f.elderlyID,
		CaregiverID: f.caregiverID,
		DateTime:    dateTime,
		Description: "Routine visit",
	}
}

func (f *fixture) mustCreate(t *testing.T, dateTime time.Time) *model.Appointment {
	t.Helper()
	apt, err := f.svc.Create(context.Background(), f.actor, f.createRequest(dateTime))
	require.NoError(t, err)
	return apt
}

func futureAt(hour, minute int) time.Time {
	base := time.Now().AddDate(0, 0, 7)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	apt, err := f.svc.Create(context.Background(), f.actor, f.createRequest(futureAt(10, 0)))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.Equal(t, DefaultDurationMinutes, apt.DurationMinutes)
	assert.Equal(t, f.actor.OrganizationID, apt.OrganizationID)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.Equal(t, 1, f.repo.lockCalls)

	stored, err := f.repo.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, apt.DateTime, stored.DateTime)

	require.Len(t, f.auditRepo.logs, 1)
	assert.Equal(t, model.AuditActionCreateAppointment, f.auditRepo.lastAction())
	assert.Contains(t, f.auditRepo.logs[0].Description, "Maria Silva")
}

func TestCreateAppointmentKeepsRequestedDuration(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest(futureAt(9, 0))
	req.DurationMinutes = 90
	apt, err := f.svc.Create(context.Background(), f.actor, req)
	require.NoError(t, err)
	assert.Equal(t, 90, apt.DurationMinutes)
}

func TestCreateAppointmentPastDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.actor, f.createRequest(time.Now().Add(-time.Hour)))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, f.auditRepo.logs)
}

func TestCreateAppointmentUnknownReferences(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest(futureAt(10, 0))
	req.ElderlyID = uuid.New()
	_, err := f.svc.Create(context.Background(), f.actor, req)
	assert.True(t, apperrors.IsNotFound(err))

	req = f.createRequest(futureAt(10, 0))
	req.CaregiverID = uuid.New()
	_, err = f.svc.Create(context.Background(), f.actor, req)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateAppointmentConflict(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, futureAt(10, 0))

	_, err := f.svc.Create(context.Background(), f.actor, f.createRequest(futureAt(10, 30)))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Len(t, f.repo.appointments, 1)
	assert.Len(t, f.auditRepo.logs, 1)
}

// An existing booking blocks exactly 60 minutes from its start, regardless of
// its stored duration. A 90-minute appointment at 10:00 does not block 11:30.
func TestConflictWindowIsFixedSixtyMinutes(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest(futureAt(10, 0))
	req.DurationMinutes = 90
	_, err := f.svc.Create(context.Background(), f.actor, req)
	require.NoError(t, err)

	apt, err := f.svc.Create(context.Background(), f.actor, f.createRequest(futureAt(11, 30)))
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)

	_, err = f.svc.Create(context.Background(), f.actor, f.createRequest(futureAt(10, 45)))
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateAppointmentIgnoresCancelledBookings(t *testing.T) {
	f := newFixture(t)

	first := f.mustCreate(t, futureAt(10, 0))
	_, err := f.svc.Cancel(context.Background(), f.actor, first.ID)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.actor, f.createRequest(futureAt(10, 0)))
	assert.NoError(t, err)
}

func TestUpdateAppointment(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	newTime := futureAt(14, 0)
	desc := "Rescheduled visit"
	updated, err := f.svc.Update(context.Background(), f.actor, apt.ID, &model.UpdateAppointmentRequest{
		DateTime:    newTime,
		Description: &desc,
	})
	require.NoError(t, err)

	assert.True(t, updated.DateTime.Equal(newTime))
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, 2, f.repo.lockCalls)
	assert.Equal(t, model.AuditActionUpdateAppointment, f.auditRepo.lastAction())
}

func TestUpdateAppointmentExcludesItselfFromConflictCheck(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	// Moving within its own occupied window must not self-conflict.
	_, err := f.svc.Update(context.Background(), f.actor, apt.ID, &model.UpdateAppointmentRequest{
		DateTime: futureAt(10, 15),
	})
	assert.NoError(t, err)
}

func TestUpdateAppointmentTerminalState(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))
	_, err := f.svc.Cancel(context.Background(), f.actor, apt.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), f.actor, apt.ID, &model.UpdateAppointmentRequest{
		DateTime: futureAt(15, 0),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	cancelled, err := f.svc.Cancel(context.Background(), f.actor, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	assert.Equal(t, model.AuditActionCancelAppointment, f.auditRepo.lastAction())

	// The row survives cancellation.
	stored, err := f.repo.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, stored.Status)
}

func TestCancelAppointmentDistinctTerminalMessages(t *testing.T) {
	f := newFixture(t)

	completed := f.mustCreate(t, futureAt(10, 0))
	_, err := f.svc.UpdateStatus(context.Background(), f.actor, completed.ID, model.AppointmentStatusInProgress)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), f.actor, completed.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), f.actor, completed.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
	assert.ErrorContains(t, err, "completed")

	cancelled := f.mustCreate(t, futureAt(14, 0))
	_, err = f.svc.Cancel(context.Background(), f.actor, cancelled.ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), f.actor, cancelled.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
	assert.ErrorContains(t, err, "already cancelled")
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	inProgress, err := f.svc.UpdateStatus(context.Background(), f.actor, apt.ID, model.AppointmentStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusInProgress, inProgress.Status)
	assert.Equal(t, model.AuditActionUpdateAppointmentStatus, f.auditRepo.lastAction())

	done, err := f.svc.UpdateStatus(context.Background(), f.actor, apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, done.Status)
}

func TestUpdateStatusSkippingForward(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	_, err := f.svc.UpdateStatus(context.Background(), f.actor, apt.ID, model.AppointmentStatusCompleted)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	_, err := f.svc.UpdateStatus(context.Background(), f.actor, apt.ID, model.AppointmentStatus("paused"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddObservation(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	updated, err := f.svc.AddObservation(context.Background(), f.actor, apt.ID, "patient in good spirits")
	require.NoError(t, err)
	assert.Contains(t, updated.Description, "Routine visit")
	assert.Contains(t, updated.Description, "--- ")
	assert.Contains(t, updated.Description, "patient in good spirits")
	assert.Equal(t, model.AuditActionAddObservation, f.auditRepo.lastAction())
}

func TestAddObservationBlankText(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	_, err := f.svc.AddObservation(context.Background(), f.actor, apt.ID, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

// On a cancelled appointment the state check wins even when the text is also
// blank.
func TestAddObservationCancelledAppointment(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))
	_, err := f.svc.Cancel(context.Background(), f.actor, apt.ID)
	require.NoError(t, err)

	_, err = f.svc.AddObservation(context.Background(), f.actor, apt.ID, "note")
	assert.True(t, apperrors.IsInvalidState(err))

	_, err = f.svc.AddObservation(context.Background(), f.actor, apt.ID, "  ")
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestHasScheduleConflict(t *testing.T) {
	f := newFixture(t)
	apt := f.mustCreate(t, futureAt(10, 0))

	conflict, err := f.svc.HasScheduleConflict(context.Background(), f.caregiverID, futureAt(10, 30), 60, nil)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = f.svc.HasScheduleConflict(context.Background(), f.caregiverID, futureAt(12, 0), 60, nil)
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = f.svc.HasScheduleConflict(context.Background(), f.caregiverID, futureAt(10, 30), 60, &apt.ID)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestFindByPeriod(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, futureAt(9, 0))
	f.mustCreate(t, futureAt(16, 0))

	got, err := f.svc.FindByPeriod(context.Background(), futureAt(8, 0), futureAt(12, 0))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
