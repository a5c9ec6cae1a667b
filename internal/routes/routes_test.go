package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"orgdash/internal/authz"
	"orgdash/internal/repositories"
	"orgdash/pkg/config"
	"orgdash/pkg/service"
)

type RouterTestSuite struct {
	suite.Suite
	Echo  *echo.Echo
	Repo  repositories.RecordRepositoryInterface
	Cache repositories.CacheRepositoryInterface
}

func testConfig() *config.Config {
	return &config.Config{
		API:    config.APIConfig{Envelope: "wrapped"},
		Server: config.ServerConfig{AggregateCacheTTL: time.Minute},
	}
}

func (s *RouterTestSuite) SetupTest() {
	s.Echo = echo.New()
	s.Repo = repositories.NewMemoryRecordRepository()
	s.Cache = repositories.NewMemoryCacheRepository()
	s.Require().NoError(InitRouter(s.Echo, s.Repo, s.Cache, nil, NopLoggers(), testConfig()))
}

type envelope struct {
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type page struct {
	Count    uint64           `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
}

func (s *RouterTestSuite) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *RouterTestSuite) create(path string, body any) map[string]any {
	rec, env := s.do(http.MethodPost, path, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &out))
	return out
}

func (s *RouterTestSuite) list(path string) page {
	rec, env := s.do(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var out page
	s.Require().NoError(json.Unmarshal(env.Data, &out))
	return out
}

func (s *RouterTestSuite) TestCreateKeepsInputAndAddsServerFields() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme", "industry": "IT"})

	s.NotEmpty(org["id"])
	s.Equal("Acme", org["name"])
	s.Equal("IT", org["industry"])
	s.Equal(true, org["is_active"])
	s.NotEmpty(org["created_at"])
	s.Nil(org["settings_id"])
}

func (s *RouterTestSuite) TestValidationErrorPayload() {
	rec, env := s.do(http.MethodPost, "/api/v1/organizations/", map[string]any{"name": "A", "website": "not a url"})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.NotEmpty(env.Message)
	s.Contains(env.Errors, "name")
	s.Contains(env.Errors, "website")
}

func (s *RouterTestSuite) TestUnknownReferenceRejected() {
	rec, env := s.do(http.MethodPost, "/api/v1/departments/", map[string]any{"name": "Продажи", "organization_id": "missing"})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(env.Errors, "organization_id")
}

func (s *RouterTestSuite) TestPaginationLinks() {
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		s.create("/api/v1/organizations/", map[string]any{"name": name})
	}

	first := s.list("/api/v1/organizations/?page_size=2")
	s.Equal(uint64(3), first.Count)
	s.Len(first.Results, 2)
	s.Nil(first.Previous)
	s.Require().NotNil(first.Next)
	s.Contains(*first.Next, "http://example.com/api/v1/organizations/")
	s.Contains(*first.Next, "page=2")

	second := s.list("/api/v1/organizations/?page=2&page_size=2")
	s.Len(second.Results, 1)
	s.Nil(second.Next)
	s.NotNil(second.Previous)
	s.Equal("Gamma", second.Results[0]["name"])
}

func (s *RouterTestSuite) TestHugePageIsEmpty() {
	s.create("/api/v1/organizations/", map[string]any{"name": "Alpha"})

	out := s.list("/api/v1/organizations/?page=922337203685477581&page_size=20")
	s.Equal(uint64(1), out.Count)
	s.Empty(out.Results)
	s.Nil(out.Next)
	s.NotNil(out.Previous)
}

func (s *RouterTestSuite) TestSearchAndOrdering() {
	s.create("/api/v1/organizations/", map[string]any{"name": "Beta Corp"})
	s.create("/api/v1/organizations/", map[string]any{"name": "Alpha Corp"})
	s.create("/api/v1/organizations/", map[string]any{"name": "Gamma Ltd"})

	found := s.list("/api/v1/organizations/?search=corp&ordering=name")
	s.Require().Len(found.Results, 2)
	s.Equal("Alpha Corp", found.Results[0]["name"])
	s.Equal("Beta Corp", found.Results[1]["name"])
}

func (s *RouterTestSuite) TestPatchMergesFields() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme", "industry": "IT", "location": "Душанбе"})
	id := org["id"].(string)

	rec, env := s.do(http.MethodPatch, "/api/v1/organizations/"+id+"/", map[string]any{"industry": "Финансы", "id": "hijack"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &updated))
	s.Equal(id, updated["id"])
	s.Equal("Финансы", updated["industry"])
	s.Equal("Душанбе", updated["location"])
	s.Equal("Acme", updated["name"])
}

func (s *RouterTestSuite) TestSoftAndHardDelete() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme"})
	path := "/api/v1/organizations/" + org["id"].(string) + "/"

	rec, _ := s.do(http.MethodDelete, path, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec, env := s.do(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var stored map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &stored))
	s.Equal(false, stored["is_active"])

	rec, _ = s.do(http.MethodDelete, path+"hard_delete/", nil)
	s.Equal(http.StatusNoContent, rec.Code)
	rec, _ = s.do(http.MethodDelete, path+"hard_delete/", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	rec, _ = s.do(http.MethodGet, path, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestNestedCollectionsAndAggregates() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme"})
	orgID := org["id"].(string)
	dept := s.create("/api/v1/departments/", map[string]any{"name": "Инженерия", "organization_id": orgID, "budget": 1000, "headcount": 4})
	deptID := dept["id"].(string)
	sub := s.create("/api/v1/departments/", map[string]any{"name": "Платформа", "organization_id": orgID, "parent_department_id": deptID})
	team := s.create("/api/v1/teams/", map[string]any{"name": "Ядро", "department_id": deptID})
	teamID := team["id"].(string)
	s.create("/api/v1/team-members/", map[string]any{"user_id": "u1", "team_id": teamID, "is_leader": true, "performance_rating": 4, "skills": []string{"go"}})
	s.create("/api/v1/team-members/", map[string]any{"user_id": "u2", "team_id": teamID, "performance_rating": 5, "skills": []string{"go", "sql"}})

	s.Equal(uint64(2), s.list("/api/v1/organizations/"+orgID+"/departments/").Count)
	s.Equal(uint64(1), s.list("/api/v1/organizations/"+orgID+"/teams/").Count)
	subs := s.list("/api/v1/departments/" + deptID + "/sub_departments/")
	s.Require().Len(subs.Results, 1)
	s.Equal(sub["id"], subs.Results[0]["id"])
	s.Equal(uint64(2), s.list("/api/v1/teams/"+teamID+"/members/").Count)

	rec, env := s.do(http.MethodGet, "/api/v1/organizations/"+orgID+"/analytics/", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var analytics map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &analytics))
	s.Equal(float64(1), analytics["version"])
	s.Equal(float64(2), analytics["department_count"])
	s.Equal(float64(2), analytics["member_count"])
	s.Equal(4.5, analytics["average_performance"])
	s.Equal(float64(1000), analytics["total_budget"])

	rec, env = s.do(http.MethodGet, "/api/v1/teams/"+teamID+"/performance/", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var perf map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &perf))
	s.Equal(float64(1), perf["leader_count"])
	s.Equal(map[string]any{"go": float64(2), "sql": float64(1)}, perf["skill_coverage"])

	rec, _ = s.do(http.MethodGet, "/api/v1/organizations/missing/teams/", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestAggregateCacheInvalidatedOnMutation() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme"})
	orgID := org["id"].(string)
	path := "/api/v1/organizations/" + orgID + "/analytics/"

	count := func() float64 {
		rec, env := s.do(http.MethodGet, path, nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		var analytics map[string]any
		s.Require().NoError(json.Unmarshal(env.Data, &analytics))
		return analytics["department_count"].(float64)
	}

	s.Equal(float64(0), count())
	s.create("/api/v1/departments/", map[string]any{"name": "Продажи", "organization_id": orgID})
	s.Equal(float64(1), count())
}

func (s *RouterTestSuite) TestSettingsLifecycle() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme"})
	orgID := org["id"].(string)

	settings := s.create("/api/v1/organization-settings/", map[string]any{"organization_id": orgID, "language": "tg"})
	s.Equal("tg", settings["language"])
	s.Equal("light", settings["theme"])
	s.Equal("UTC", settings["timezone"])

	rec, env := s.do(http.MethodPost, "/api/v1/organization-settings/", map[string]any{"organization_id": orgID})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(env.Errors, "organization_id")

	rec, env = s.do(http.MethodGet, "/api/v1/organization-settings/get_by_organization/?organization_id="+orgID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var found map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &found))
	s.Equal(settings["id"], found["id"])

	rec, env = s.do(http.MethodGet, "/api/v1/organizations/"+orgID+"/", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var stored map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &stored))
	s.Equal(settings["id"], stored["settings_id"])

	rec, _ = s.do(http.MethodGet, "/api/v1/organization-settings/get_by_organization/?organization_id=missing", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestConcurrentSettingsCreateKeepsOne() {
	org := s.create("/api/v1/organizations/", map[string]any{"name": "Acme"})
	body, err := json.Marshal(map[string]any{"organization_id": org["id"]})
	s.Require().NoError(err)

	const workers = 16
	codes := make(chan int, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/organization-settings/", bytes.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, req)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			s.Equal(http.StatusBadRequest, code)
		}
	}
	s.Equal(1, created)
	s.Equal(uint64(1), s.list("/api/v1/organization-settings/?organization_id="+org["id"].(string)).Count)
}

func (s *RouterTestSuite) TestRolePermissionsAndAuditLog() {
	resource := s.create("/api/v1/rbac/resources/", map[string]any{"name": "teams", "type": "entity"})
	perm := s.create("/api/v1/rbac/permissions/", map[string]any{"name": "teams:view", "action": "view", "resource_id": resource["id"]})
	role := s.create("/api/v1/rbac/roles/", map[string]any{"name": "viewer"})
	roleID := role["id"].(string)

	rec, _ := s.do(http.MethodPost, "/api/v1/rbac/roles/"+roleID+"/assign_permissions/", map[string]any{"permission_ids": []string{"missing"}})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/rbac/roles/"+roleID+"/assign_permissions/", map[string]any{"permission_ids": []any{perm["id"]}})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(uint64(1), s.list("/api/v1/rbac/roles/"+roleID+"/permissions/").Count)
	s.Equal(uint64(1), s.list("/api/v1/rbac/resources/"+resource["id"].(string)+"/permissions/").Count)

	rec, _ = s.do(http.MethodPost, "/api/v1/rbac/roles/"+roleID+"/revoke_permissions/", map[string]any{"permission_ids": []any{perm["id"]}})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(uint64(0), s.list("/api/v1/rbac/roles/"+roleID+"/permissions/").Count)

	logs := s.list("/api/v1/rbac/audit-logs/?resource_type=rbac-roles")
	s.Equal(uint64(3), logs.Count)
	actions := []any{}
	for _, entry := range logs.Results {
		actions = append(actions, entry["action"])
	}
	s.ElementsMatch([]any{"create", "assign_permissions", "revoke_permissions"}, actions)

	rec, _ = s.do(http.MethodPost, "/api/v1/rbac/audit-logs/", map[string]any{"action": "forged"})
	s.NotEqual(http.StatusCreated, rec.Code)
}

func (s *RouterTestSuite) TestMissingTrailingSlashStillRoutes() {
	rec, _ := s.do(http.MethodGet, "/api/v1/organizations", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

type AuthTestSuite struct {
	suite.Suite
	Echo *echo.Echo
	JWT  service.JWTService
}

func (s *AuthTestSuite) SetupTest() {
	s.Echo = echo.New()
	s.JWT = service.NewJWTService("test-secret", time.Hour)
	repo := repositories.NewMemoryRecordRepository()
	s.Require().NoError(InitRouter(s.Echo, repo, nil, s.JWT, NopLoggers(), testConfig()))
}

func (s *AuthTestSuite) request(method, path, token string) int {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(`{"name":"Acme"}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec.Code
}

func (s *AuthTestSuite) token(perms ...string) string {
	token, err := s.JWT.GenerateToken("user-1", perms)
	s.Require().NoError(err)
	return token
}

func (s *AuthTestSuite) TestMissingTokenIsUnauthorized() {
	s.Equal(http.StatusUnauthorized, s.request(http.MethodGet, "/api/v1/organizations/", ""))
	s.Equal(http.StatusUnauthorized, s.request(http.MethodGet, "/api/v1/organizations/", "garbage"))
}

func (s *AuthTestSuite) TestPermissionGate() {
	viewer := s.token(authz.OrganizationsView)
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/api/v1/organizations/", viewer))
	s.Equal(http.StatusForbidden, s.request(http.MethodPost, "/api/v1/organizations/", viewer))
	s.Equal(http.StatusForbidden, s.request(http.MethodGet, "/api/v1/teams/", viewer))

	manager := s.token(authz.OrganizationsManage)
	s.Equal(http.StatusCreated, s.request(http.MethodPost, "/api/v1/organizations/", manager))
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/api/v1/organizations/", manager))

	s.Equal(http.StatusOK, s.request(http.MethodGet, "/api/v1/rbac/audit-logs/", s.token(authz.Superuser)))
}

func (s *AuthTestSuite) TestHealthIsPublic() {
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/health/", ""))
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
