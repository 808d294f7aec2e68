package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seniorcare/admin-api/internal/handler"
	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/appointment"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

func apperrNotFound(id uuid.UUID) error {
	return apperrors.NotFoundf("not found with id: %s", id)
}

type stubAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (s *stubAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	copied := *a
	s.appointments[a.ID] = &copied
	return nil
}

func (s *stubAppointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	copied := *a
	s.appointments[a.ID] = &copied
	return nil
}

func (s *stubAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, apperrNotFound(id)
	}
	copied := *a
	return &copied, nil
}

func (s *stubAppointmentRepo) FindConflicting(ctx context.Context, caregiverID uuid.UUID, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.appointments {
		if a.CaregiverID != caregiverID || a.Status == model.AppointmentStatusCancelled {
			continue
		}
		startsInside := !a.DateTime.Before(start) && !a.DateTime.After(end)
		coversStart := !a.DateTime.After(start) && !a.DateTime.Add(60*time.Minute).Before(start)
		if startsInside || coversStart {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) List(ctx context.Context, organizationID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.appointments {
		if a.OrganizationID == organizationID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) FindByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.appointments {
		if a.ElderlyID == elderlyID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) FindByCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.appointments {
		if a.CaregiverID == caregiverID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range s.appointments {
		if !a.DateTime.Before(start) && !a.DateTime.After(end) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) WithCaregiverLock(ctx context.Context, caregiverID uuid.UUID, fn func(repository.AppointmentStore) error) error {
	return fn(s)
}

type stubElderlyRepo struct {
	repository.ElderlyRepository
	elderly map[uuid.UUID]*model.Elderly
}

func (s *stubElderlyRepo) Get(ctx context.Context, id uuid.UUID) (*model.Elderly, error) {
	e, ok := s.elderly[id]
	if !ok {
		return nil, apperrNotFound(id)
	}
	return e, nil
}

type stubCaregiverRepo struct {
	repository.CaregiverRepository
	caregivers map[uuid.UUID]*model.Caregiver
}

func (s *stubCaregiverRepo) Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error) {
	cg, ok := s.caregivers[id]
	if !ok {
		return nil, apperrNotFound(id)
	}
	return cg, nil
}

type stubAuditRepo struct {
	repository.AuditRepository
	logs []*model.AuditLog
}

func (s *stubAuditRepo) Create(ctx context.Context, log *model.AuditLog) error {
	s.logs = append(s.logs, log)
	return nil
}

type testServer struct {
	engine      *gin.Engine
	repo        *stubAppointmentRepo
	actor       model.Actor
	elderlyID   uuid.UUID
	caregiverID uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orgID := uuid.New()
	actor := model.Actor{UserID: uuid.New(), OrganizationID: orgID, Role: model.RoleAdmin}

	elderlyID := uuid.New()
	caregiverID := uuid.New()

	repo := newStubAppointmentRepo()
	elderlyRepo := &stubElderlyRepo{elderly: map[uuid.UUID]*model.Elderly{
		elderlyID: {ID: elderlyID, OrganizationID: orgID, Name: "Maria Silva"},
	}}
	caregiverRepo := &stubCaregiverRepo{caregivers: map[uuid.UUID]*model.Caregiver{
		caregiverID: {ID: caregiverID, OrganizationID: orgID},
	}}
	auditor := audit.NewService(&stubAuditRepo{})

	svc := appointment.NewService(repo, elderlyRepo, caregiverRepo, auditor)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set(handler.ActorKey, actor)
	})
	NewHandler(svc).RegisterRoutes(group)

	return &testServer{
		engine:      engine,
		repo:        repo,
		actor:       actor,
		elderlyID:   elderlyID,
		caregiverID: caregiverID,
	}
}

func (ts *testServer) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *handler.Response {
	t.Helper()
	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func decodeAppointment(t *testing.T, resp *handler.Response) *model.Appointment {
	t.Helper()
	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var a model.Appointment
	require.NoError(t, json.Unmarshal(payload, &a))
	return &a
}

func (ts *testServer) createAppointment(t *testing.T, dateTime time.Time) *model.Appointment {
	t.Helper()
	w := ts.request(t, http.MethodPost, "/api/v1/appointments", gin.H{
		"elderly_id":   ts.elderlyID,
		"caregiver_id": ts.caregiverID,
		"date_time":    dateTime.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeAppointment(t, decodeResponse(t, w))
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	a := ts.createAppointment(t, slot)

	assert.Equal(t, model.AppointmentStatusScheduled, a.Status)
	assert.Equal(t, 60, a.DurationMinutes)
	assert.Equal(t, ts.actor.OrganizationID, a.OrganizationID)
}

func TestCreateAppointmentEndpointRejectsMissingFields(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/api/v1/appointments", gin.H{
		"elderly_id": ts.elderlyID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decodeResponse(t, w).Status)
}

func TestCreateAppointmentEndpointConflict(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	ts.createAppointment(t, slot)

	w := ts.request(t, http.MethodPost, "/api/v1/appointments", gin.H{
		"elderly_id":   ts.elderlyID,
		"caregiver_id": ts.caregiverID,
		"date_time":    slot.Add(30 * time.Minute).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "already has a booking")
}

func TestGetAppointmentEndpoint(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	created := ts.createAppointment(t, slot)

	w := ts.request(t, http.MethodGet, "/api/v1/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeAppointment(t, decodeResponse(t, w))
	assert.Equal(t, created.ID, got.ID)

	w = ts.request(t, http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodGet, "/api/v1/appointments/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelAppointmentEndpointKeepsRow(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	created := ts.createAppointment(t, slot)

	w := ts.request(t, http.MethodDelete, "/api/v1/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.AppointmentStatusCancelled, decodeAppointment(t, decodeResponse(t, w)).Status)

	w = ts.request(t, http.MethodGet, "/api/v1/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.AppointmentStatusCancelled, decodeAppointment(t, decodeResponse(t, w)).Status)

	w = ts.request(t, http.MethodDelete, "/api/v1/appointments/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeResponse(t, w).Message, "already cancelled")
}

func TestUpdateStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	created := ts.createAppointment(t, slot)

	w := ts.request(t, http.MethodPatch, "/api/v1/appointments/"+created.ID.String()+"/status", gin.H{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.AppointmentStatusInProgress, decodeAppointment(t, decodeResponse(t, w)).Status)

	w = ts.request(t, http.MethodPatch, "/api/v1/appointments/"+created.ID.String()+"/status", gin.H{
		"status": "paused",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddObservationEndpoint(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	created := ts.createAppointment(t, slot)

	w := ts.request(t, http.MethodPost, "/api/v1/appointments/"+created.ID.String()+"/observations", gin.H{
		"observation": "patient in good spirits",
	})
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeAppointment(t, decodeResponse(t, w))
	assert.Contains(t, got.Description, "patient in good spirits")
	assert.Contains(t, got.Description, "--- ")
}

func TestCheckConflictEndpoint(t *testing.T) {
	ts := newTestServer(t)

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	ts.createAppointment(t, slot)

	url := fmt.Sprintf("/api/v1/appointments/conflicts?caregiver_id=%s&date_time=%s",
		ts.caregiverID, slot.Add(30*time.Minute).Format(time.RFC3339))
	w := ts.request(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Conflict bool `json:"conflict"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Conflict)

	url = fmt.Sprintf("/api/v1/appointments/conflicts?caregiver_id=%s&date_time=%s",
		ts.caregiverID, slot.Add(3*time.Hour).Format(time.RFC3339))
	w = ts.request(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Conflict)
}
