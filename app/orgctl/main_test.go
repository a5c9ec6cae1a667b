package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"orgdash/internal/controllers"
	"orgdash/internal/repositories"
	"orgdash/internal/routes"
	"orgdash/internal/transport"
	"orgdash/pkg/config"
	"orgdash/pkg/service"
	"orgdash/seeders"
)

// startBackend поднимает сервер разработки с демо-данными и направляет на него orgctl.
func startBackend(t *testing.T) {
	t.Helper()
	repo := repositories.NewMemoryRecordRepository()
	cache := repositories.NewMemoryCacheRepository()
	records := controllers.NewRecordController(repo, cache, transport.EnvelopeWrapped, time.Minute, zap.NewNop())
	require.NoError(t, seeders.NewSeeder(repo, records, zap.NewNop()).SeedDemoData(context.Background()))

	e := echo.New()
	cfg := &config.Config{Server: config.ServerConfig{AggregateCacheTTL: time.Minute}}
	require.NoError(t, routes.InitRouter(e, repo, cache, nil, routes.NopLoggers(), cfg))
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	t.Setenv("API_BASE_URL", server.URL+"/api/v1")
	t.Setenv("API_ENVELOPE", "wrapped")
	t.Setenv("API_TOKEN", "")
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestListAndGet(t *testing.T) {
	startBackend(t)

	code, out, errOut := runCLI(t, "list", "organizations", "-ordering", "name", "-page-size", "1")
	require.Equal(t, 0, code, errOut)

	var page struct {
		Count   uint64 `json:"count"`
		Next    string `json:"next"`
		Results []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, uint64(2), page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Арванд Финанс", page.Results[0].Name)
	assert.NotEmpty(t, page.Next)

	code, out, errOut = runCLI(t, "get", "organizations", page.Results[0].ID)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"name": "Арванд Финанс"`)
}

func TestGetMissingPrintsFormattedError(t *testing.T) {
	startBackend(t)

	code, out, errOut := runCLI(t, "get", "teams", "missing")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)

	var formatted struct {
		Type   string `json:"type"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(errOut), &formatted))
	assert.Equal(t, "NotFoundError", formatted.Type)
	assert.Equal(t, 404, formatted.Status)
}

func TestExport(t *testing.T) {
	startBackend(t)
	path := filepath.Join(t.TempDir(), "members.xlsx")

	code, out, errOut := runCLI(t, "export", "team-members", "-out", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"rows": 10`)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Участники")
	require.NoError(t, err)
	assert.Len(t, rows, 11)
	assert.Equal(t, "Пользователь", rows[0][1])
}

func TestExportByOrganization(t *testing.T) {
	startBackend(t)

	code, out, errOut := runCLI(t, "list", "organizations", "-filter", "name=Арванд Финанс")
	require.Equal(t, 0, code, errOut)
	var page struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Results, 1)

	path := filepath.Join(t.TempDir(), "teams.xlsx")
	code, out, errOut = runCLI(t, "export", "teams", "-out", path, "-org", page.Results[0].ID)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"rows": 1`)
}

func TestExportUnsupportedResource(t *testing.T) {
	startBackend(t)
	path := filepath.Join(t.TempDir(), "roles.xlsx")

	code, _, errOut := runCLI(t, "export", "roles", "-out", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "ValidationError")
	assert.NoFileExists(t, path)
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "dev-secret")

	code, out, errOut := runCLI(t, "token", "-sub", "u-1", "-perm", "teams:view, teams:manage")
	require.Equal(t, 0, code, errOut)

	claims, err := service.NewJWTService("dev-secret", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, []string{"teams:view", "teams:manage"}, claims.Permissions)
}

func TestTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	code, _, errOut := runCLI(t, "token", "-sub", "u-1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "JWT_SECRET_KEY")
}

func TestUsage(t *testing.T) {
	code, _, errOut := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "orgctl list")

	code, _, _ = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
}

func TestUnknownResource(t *testing.T) {
	startBackend(t)

	code, _, errOut := runCLI(t, "list", "widgets")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "widgets")
}
