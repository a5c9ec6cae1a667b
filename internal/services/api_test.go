package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"orgdash/internal/dto"
	"orgdash/internal/entities"
	"orgdash/internal/repositories"
	"orgdash/internal/routes"
	"orgdash/pkg/config"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/types"
	"orgdash/pkg/utils"
)

// APITestSuite гоняет клиент против настоящего сервера разработки.
type APITestSuite struct {
	suite.Suite
	Server *httptest.Server
	API    *API
	ctx    context.Context
}

func (s *APITestSuite) setup(envelope string) {
	cfg := &config.Config{
		API:    config.APIConfig{Envelope: envelope},
		Server: config.ServerConfig{AggregateCacheTTL: time.Minute},
	}
	e := echo.New()
	s.Require().NoError(routes.InitRouter(e, repositories.NewMemoryRecordRepository(),
		repositories.NewMemoryCacheRepository(), nil, routes.NopLoggers(), cfg))
	s.Server = httptest.NewServer(e)

	api, err := NewAPI(config.APIConfig{
		BaseURL:       s.Server.URL + "/api/v1",
		Timeout:       5 * time.Second,
		MaxRedirects:  3,
		RetryInterval: time.Millisecond,
		Envelope:      envelope,
	}, zap.NewNop())
	s.Require().NoError(err)
	s.API = api
	s.ctx = context.Background()
}

func (s *APITestSuite) SetupTest() {
	s.setup("wrapped")
}

func (s *APITestSuite) TearDownTest() {
	s.Server.Close()
}

func (s *APITestSuite) newOrganization(name string) *entities.Organization {
	org, err := s.API.Organizations.CreateOrganization(s.ctx, dto.CreateOrganizationDTO{
		Name:     name,
		Industry: null.StringFrom("IT"),
	})
	s.Require().NoError(err)
	return org
}

func (s *APITestSuite) TestCreateReturnsSupersetOfInput() {
	org := s.newOrganization("Acme")

	s.NotEmpty(org.ID)
	s.Equal("Acme", org.Name)
	s.Equal("IT", org.Industry.String)
	s.True(org.IsActive)
	s.NotNil(org.CreatedAt)
}

func (s *APITestSuite) TestUpdateKeepsOmittedFields() {
	org := s.newOrganization("Acme")

	updated, err := s.API.Organizations.UpdateOrganization(s.ctx, org.ID, dto.UpdateOrganizationDTO{
		Location: utils.ToPtr("Душанбе"),
	})
	s.Require().NoError(err)
	s.Equal("Душанбе", updated.Location.String)

	fetched, err := s.API.Organizations.GetOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal("Acme", fetched.Name)
	s.Equal("IT", fetched.Industry.String)
	s.Equal("Душанбе", fetched.Location.String)
}

func (s *APITestSuite) TestSoftDeleteThenGetShowsInactive() {
	org := s.newOrganization("Acme")

	ok, err := s.API.Organizations.DeleteOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.True(ok)

	fetched, err := s.API.Organizations.GetOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.False(fetched.IsActive)
}

func (s *APITestSuite) TestHardDeleteTwiceIsNotFound() {
	org := s.newOrganization("Acme")

	ok, err := s.API.Organizations.HardDeleteOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.API.Organizations.HardDeleteOrganization(s.ctx, org.ID)
	s.False(ok)
	var notFound *apperrors.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal(http.StatusNotFound, notFound.Status)

	_, err = s.API.Organizations.GetOrganization(s.ctx, org.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *APITestSuite) TestBackendValidationError() {
	_, err := s.API.Departments.CreateDepartment(s.ctx, dto.CreateDepartmentDTO{
		Name:           "Продажи",
		OrganizationID: "missing",
	})

	var validationErr *apperrors.ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Contains(validationErr.Errors, "organization_id")
}

func (s *APITestSuite) TestListAllFollowsCursors() {
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		s.newOrganization(name)
	}

	page, err := s.API.Organizations.GetOrganizations(s.ctx, types.Params{"page_size": "2"})
	s.Require().NoError(err)
	s.Equal(uint64(5), page.Count)
	s.Len(page.Results, 2)
	s.True(page.HasNext())

	all, err := s.API.Organizations.GetAllOrganizations(s.ctx, types.Params{"page_size": "2", "ordering": "name"})
	s.Require().NoError(err)
	s.Require().Len(all, 5)
	s.Equal("Alpha", all[0].Name)
	s.Equal("Gamma", all[4].Name)
}

func (s *APITestSuite) TestHierarchyAndAggregates() {
	org := s.newOrganization("Acme")
	dept, err := s.API.Departments.CreateDepartment(s.ctx, dto.CreateDepartmentDTO{
		Name:           "Инженерия",
		OrganizationID: org.ID,
		Budget:         null.Float64From(1200),
		Headcount:      null.IntFrom(3),
	})
	s.Require().NoError(err)
	team, err := s.API.Teams.CreateTeam(s.ctx, dto.CreateTeamDTO{Name: "Ядро", DepartmentID: dept.ID, Skills: []string{"go"}})
	s.Require().NoError(err)
	_, err = s.API.TeamMembers.CreateTeamMember(s.ctx, dto.CreateTeamMemberDTO{
		UserID:            "u1",
		TeamID:            team.ID,
		IsLeader:          true,
		Skills:            []string{"go"},
		PerformanceRating: null.Float64From(4),
	})
	s.Require().NoError(err)

	teams, err := s.API.Organizations.GetOrganizationTeams(s.ctx, org.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(teams.Results, 1)
	s.Equal(team.ID, teams.Results[0].ID)

	members, err := s.API.Teams.GetTeamMembers(s.ctx, team.ID, nil)
	s.Require().NoError(err)
	s.Equal(uint64(1), members.Count)

	analytics, err := s.API.Organizations.GetOrganizationAnalytics(s.ctx, org.ID, nil)
	s.Require().NoError(err)
	s.Equal(1, analytics.MemberCount)
	s.Equal("100.0%", analytics.ActivePercent())

	perf, err := s.API.Departments.GetDepartmentPerformance(s.ctx, dept.ID, nil)
	s.Require().NoError(err)
	s.InDelta(400.0, perf.BudgetPerHead, 0.001)

	activity, err := s.API.Organizations.GetOrganizationActivity(s.ctx, org.ID, types.Params{"limit": "10"})
	s.Require().NoError(err)
	s.Len(activity.Items, 4)
	s.Equal(entities.AggregateVersion, activity.Version)

	growth, err := s.API.Organizations.GetOrganizationGrowth(s.ctx, org.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(growth.Points, 1)
	s.Equal(1, growth.Points[0].Teams)
}

func (s *APITestSuite) TestSettingsByOrganization() {
	org := s.newOrganization("Acme")

	created, err := s.API.OrganizationSettings.CreateOrganizationSettings(s.ctx, dto.CreateOrganizationSettingsDTO{
		OrganizationID: org.ID,
		FeatureFlags:   map[string]any{"beta": true},
	})
	s.Require().NoError(err)

	found, err := s.API.OrganizationSettings.GetSettingsByOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal(true, found.FeatureFlags["beta"])

	refreshed, err := s.API.Organizations.GetOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, refreshed.SettingsID.String)
}

func (s *APITestSuite) TestRBACFlow() {
	res, err := s.API.Resources.CreateResource(s.ctx, dto.CreateResourceDTO{Name: "teams", Type: "entity"})
	s.Require().NoError(err)
	perm, err := s.API.Permissions.CreatePermission(s.ctx, dto.CreatePermissionDTO{
		Name:       "teams:view",
		Action:     "view",
		ResourceID: null.StringFrom(res.ID),
	})
	s.Require().NoError(err)
	role, err := s.API.Roles.CreateRole(s.ctx, dto.CreateRoleDTO{Name: "viewer"})
	s.Require().NoError(err)

	role, err = s.API.Roles.AssignPermissions(s.ctx, role.ID, dto.PermissionIDsDTO{PermissionIDs: []string{perm.ID}})
	s.Require().NoError(err)
	s.Equal([]string{perm.ID}, role.PermissionIDs)

	perms, err := s.API.Roles.GetRolePermissions(s.ctx, role.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(perms.Results, 1)
	s.Equal("teams:view", perms.Results[0].Name)

	byResource, err := s.API.Resources.GetResourcePermissions(s.ctx, res.ID, nil)
	s.Require().NoError(err)
	s.Equal(uint64(1), byResource.Count)

	logs, err := s.API.AuditLogs.GetAuditLogs(s.ctx, types.Params{"resource_type": "rbac-roles"})
	s.Require().NoError(err)
	s.Require().Equal(uint64(2), logs.Count)
	actions := []string{logs.Results[0].Action, logs.Results[1].Action}
	s.ElementsMatch([]string{"create", "assign_permissions"}, actions)

	entry, err := s.API.AuditLogs.GetAuditLog(s.ctx, logs.Results[0].ID)
	s.Require().NoError(err)
	s.Equal(role.ID, entry.ResourceID)
}

func (s *APITestSuite) TestBareEnvelope() {
	s.Server.Close()
	s.setup("bare")

	org := s.newOrganization("Acme")
	fetched, err := s.API.Organizations.GetOrganization(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal("Acme", fetched.Name)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestClientValidationSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	api, err := NewAPI(config.APIConfig{BaseURL: server.URL}, zap.NewNop())
	require.NoError(t, err)

	_, err = api.Organizations.CreateOrganization(context.Background(), dto.CreateOrganizationDTO{Name: "A"})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "name")

	_, err = api.Roles.AssignPermissions(context.Background(), "1", dto.PermissionIDsDTO{})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "permission_ids")

	assert.Equal(t, int32(0), calls.Load())
}

func TestNewAPI_RejectsUnknownEnvelope(t *testing.T) {
	_, err := NewAPI(config.APIConfig{BaseURL: "http://localhost", Envelope: "xml"}, nil)
	require.Error(t, err)
}
