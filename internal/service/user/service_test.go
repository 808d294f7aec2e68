package user

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
	"github.com/seniorcare/admin-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user not found with id: %s", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFoundf("user not found with email: %s", email)
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.NotFoundf("user not found with id: %s", u.ID)
	}
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.NotFoundf("user not found with id: %s", id)
	}
	u.Password = hashed
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, organizationID uuid.UUID) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.users {
		if u.OrganizationID == organizationID {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeOrgRepo struct {
	repository.OrganizationRepository
	orgs map[uuid.UUID]*model.Organization
}

func (f *fakeOrgRepo) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return nil, apperrors.NotFoundf("organization not found with id: %s", id)
	}
	return o, nil
}

type fakeAuditRepo struct {
	repository.AuditRepository
	logs []*model.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeAuditRepo) lastAction() string {
	if len(f.logs) == 0 {
		return ""
	}
	return f.logs[len(f.logs)-1].Action
}

type fixture struct {
	svc       *Service
	repo      *fakeUserRepo
	auditRepo *fakeAuditRepo
	actor     model.Actor
	orgID     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orgID := uuid.New()
	repo := newFakeUserRepo()
	orgRepo := &fakeOrgRepo{orgs: map[uuid.UUID]*model.Organization{
		orgID: {ID: orgID, Name: "Sunrise Care", CreatedAt: time.Now()},
	}}
	auditRepo := &fakeAuditRepo{}

	svc := NewService(repo, orgRepo, security.NewBcryptHasher(4), audit.NewService(auditRepo))

	return &fixture{
		svc:       svc,
		repo:      repo,
		auditRepo: auditRepo,
		actor:     model.Actor{UserID: uuid.New(), OrganizationID: orgID, Role: model.RoleAdmin},
		orgID:     orgID,
	}
}

func (f *fixture) createRequest() *model.CreateUserRequest {
	return &model.CreateUserRequest{
		OrganizationID: f.orgID,
		Name:           "Ana Souza",
		Email:          "ana@example.com",
		Password:       "sunrise42",
		Role:           model.RoleCaregiver,
	}
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.Create(context.Background(), f.actor, f.createRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, model.RoleCaregiver, u.Role)
	assert.NotEqual(t, "sunrise42", u.Password, "password must be stored hashed")
	assert.Equal(t, model.AuditActionCreateUser, f.auditRepo.lastAction())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.actor, f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.actor, f.createRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateUserUnknownOrganization(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.OrganizationID = uuid.New()

	_, err := f.svc.Create(context.Background(), f.actor, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateUserInvalidRole(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.Role = model.Role("SUPERVISOR")

	_, err := f.svc.Create(context.Background(), f.actor, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "sunrise42", ""},
		{"too short", "ab1", "at least 8 characters"},
		{"letters only", "sunrisesun", "letters and digits"},
		{"digits only", "1234567890", "letters and digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.Create(context.Background(), f.actor, f.createRequest())
	require.NoError(t, err)
	oldHash := f.repo.users[u.ID].Password

	err = f.svc.ChangePassword(context.Background(), f.actor, u.ID, &model.ChangePasswordRequest{
		CurrentPassword: "sunrise42",
		NewPassword:     "moonlight7",
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, f.repo.users[u.ID].Password)
	assert.Equal(t, model.AuditActionChangePassword, f.auditRepo.lastAction())
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.Create(context.Background(), f.actor, f.createRequest())
	require.NoError(t, err)

	err = f.svc.ChangePassword(context.Background(), f.actor, u.ID, &model.ChangePasswordRequest{
		CurrentPassword: "not-the-password1",
		NewPassword:     "moonlight7",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "current password is incorrect")
}

func TestUpdateUserEmailConflict(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(context.Background(), f.actor, f.createRequest())
	require.NoError(t, err)

	req := f.createRequest()
	req.Email = "bruno@example.com"
	second, err := f.svc.Create(context.Background(), f.actor, req)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), f.actor, second.ID, &model.UpdateUserRequest{
		Name:  second.Name,
		Email: first.Email,
		Role:  second.Role,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}
