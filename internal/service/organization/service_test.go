package organization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

type fakeOrgRepo struct {
	orgs       map[uuid.UUID]*model.Organization
	dependents map[uuid.UUID]bool
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		orgs:       make(map[uuid.UUID]*model.Organization),
		dependents: make(map[uuid.UUID]bool),
	}
}

func (f *fakeOrgRepo) Create(ctx context.Context, org *model.Organization) error {
	copied := *org
	f.orgs[org.ID] = &copied
	return nil
}

func (f *fakeOrgRepo) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return nil, apperrors.NotFoundf("organization not found with id: %s", id)
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrgRepo) GetByName(ctx context.Context, name string) (*model.Organization, error) {
	for _, o := range f.orgs {
		if o.Name == name {
			copied := *o
			return &copied, nil
		}
	}
	return nil, apperrors.NotFoundf("organization not found with name: %s", name)
}

func (f *fakeOrgRepo) Update(ctx context.Context, org *model.Organization) error {
	if _, ok := f.orgs[org.ID]; !ok {
		return apperrors.NotFoundf("organization not found with id: %s", org.ID)
	}
	copied := *org
	f.orgs[org.ID] = &copied
	return nil
}

func (f *fakeOrgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.orgs, id)
	return nil
}

func (f *fakeOrgRepo) List(ctx context.Context) ([]*model.Organization, error) {
	var out []*model.Organization
	for _, o := range f.orgs {
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeOrgRepo) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.dependents[id], nil
}

type fakeAuditRepo struct {
	repository.AuditRepository
	logs []*model.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func newTestService() (*Service, *fakeOrgRepo, *fakeAuditRepo) {
	repo := newFakeOrgRepo()
	auditRepo := &fakeAuditRepo{}
	return NewService(repo, audit.NewService(auditRepo)), repo, auditRepo
}

func testActor() model.Actor {
	return model.Actor{UserID: uuid.New(), OrganizationID: uuid.New(), Role: model.RoleAdmin}
}

func TestCreateOrganization(t *testing.T) {
	svc, _, auditRepo := newTestService()

	org, err := svc.Create(context.Background(), testActor(), &model.CreateOrganizationRequest{
		Name:   "Sunrise Care",
		Domain: "sunrise.example.com",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, org.ID)
	assert.Equal(t, "Sunrise Care", org.Name)
	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, model.AuditActionCreateOrganization, auditRepo.logs[0].Action)
}

func TestCreateOrganizationDuplicateName(t *testing.T) {
	svc, _, _ := newTestService()

	req := &model.CreateOrganizationRequest{Name: "Sunrise Care", Domain: "sunrise.example.com"}
	_, err := svc.Create(context.Background(), testActor(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), testActor(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestUpdateOrganizationRenameToTakenName(t *testing.T) {
	svc, _, _ := newTestService()
	actor := testActor()

	_, err := svc.Create(context.Background(), actor, &model.CreateOrganizationRequest{
		Name: "Sunrise Care", Domain: "sunrise.example.com",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), actor, &model.CreateOrganizationRequest{
		Name: "Moonlight Care", Domain: "moonlight.example.com",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), actor, second.ID, &model.UpdateOrganizationRequest{
		Name: "Sunrise Care", Domain: second.Domain,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// Keeping its own name is not a rename and must pass.
	_, err = svc.Update(context.Background(), actor, second.ID, &model.UpdateOrganizationRequest{
		Name: "Moonlight Care", Domain: "updated.example.com",
	})
	assert.NoError(t, err)
}

func TestDeleteOrganizationWithDependents(t *testing.T) {
	svc, repo, _ := newTestService()
	actor := testActor()

	org, err := svc.Create(context.Background(), actor, &model.CreateOrganizationRequest{
		Name: "Sunrise Care", Domain: "sunrise.example.com",
	})
	require.NoError(t, err)

	repo.dependents[org.ID] = true
	err = svc.Delete(context.Background(), actor, org.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	repo.dependents[org.ID] = false
	require.NoError(t, svc.Delete(context.Background(), actor, org.ID))

	_, err = svc.Get(context.Background(), org.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
