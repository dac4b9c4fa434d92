package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/pkg/config"
	"pcs-crm/internal/pkg/jwt"
	"pcs-crm/internal/service"
	"pcs-crm/pkg/constants"
	"pcs-crm/pkg/errors"
	"pcs-crm/pkg/utils"
)

type stubUserService struct{ service.UserService }

func (stubUserService) TouchSession(int64) error { return nil }

type stubTaskService struct{ service.TaskService }

func (stubTaskService) MyTasks(int64) ([]progress.MyTaskView, error) {
	return []progress.MyTaskView{}, nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{
		JWT: config.JWTConfig{Secret: "router-secret", AccessTokenExpire: 600, RefreshTokenExpire: 1200},
	}}
	config.GlobalConfig = cfg

	return NewEngine(cfg, &Services{
		User: stubUserService{},
		Task: stubTaskService{},
	})
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(jwt.Identity{UserID: 1, Email: role + "@pcs.test", Role: role})
	require.NoError(t, err)
	return token
}

func call(t *testing.T, r *gin.Engine, method, path, token string) utils.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.HeaderBearerPrefix+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRoutes_RequireAuthentication(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/api/v1/tasks/mine", "/api/v1/profile", "/api/v1/attendance/working-time"} {
		resp := call(t, r, http.MethodGet, path, "")
		assert.Equal(t, errors.CodeUnauthorized, resp.Code, path)
	}
}

func TestRoutes_PermissionGates(t *testing.T) {
	r := newTestEngine(t)
	employee := tokenFor(t, constants.RoleEmployee)

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/task"},
		{http.MethodPut, "/api/v1/task/3"},
		{http.MethodDelete, "/api/v1/task/3"},
		{http.MethodPut, "/api/v1/task/assign"},
		{http.MethodPut, "/api/v1/team-member-request/3/status"},
		{http.MethodGet, "/api/v1/attendance/employees"},
	}
	for _, g := range gated {
		resp := call(t, r, g.method, g.path, employee)
		assert.Equal(t, errors.CodeForbidden, resp.Code, g.method+" "+g.path)
	}

	resp := call(t, r, http.MethodGet, "/api/v1/tasks/mine", employee)
	assert.Equal(t, errors.CodeSuccess, resp.Code)
}
