package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/pkg/auth"
	"pcs-crm/internal/service"
	"pcs-crm/pkg/constants"
	"pcs-crm/pkg/errors"
	"pcs-crm/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidations(); err != nil {
		panic(err)
	}
}

func asUser(id int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.CtxKeyUserID, id)
		c.Set(constants.CtxKeyRole, role)
		c.Next()
	}
}

func canAccess(permission auth.Permission) func(role string) bool {
	return func(role string) bool { return auth.Allow([]string{role}, permission) }
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) utils.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type mockTaskService struct {
	service.TaskService
	mock.Mock
}

func (m *mockTaskService) Create(creatorID int64, req *dto.TaskCreateRequest) (*model.Task, error) {
	args := m.Called(creatorID, req)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) GetByID(id int64) (*model.Task, error) {
	args := m.Called(id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) UpdateAssigneeStatus(taskID, userID int64, status string) (*model.Task, error) {
	args := m.Called(taskID, userID, status)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func TestTaskHandler_Create(t *testing.T) {
	svc := &mockTaskService{}
	h := NewTaskHandler(svc)
	r := gin.New()
	r.POST("/task", asUser(11, constants.RoleManager), h.Create)

	resp := doJSON(t, r, http.MethodPost, "/task", gin.H{"description": "missing title"})
	assert.Equal(t, errors.CodeBadRequest, resp.Code)
	assert.Contains(t, resp.Detail, "Title")

	deadline := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.On("Create", int64(11), mock.MatchedBy(func(req *dto.TaskCreateRequest) bool {
		return req.Title == "Website" && req.Deadline.Equal(deadline) && len(req.AssigneeIDs) == 2
	})).Return(&model.Task{Title: "Website", OverallStatus: constants.OverallStatusNotStarted}, nil).Once()

	resp = doJSON(t, r, http.MethodPost, "/task", gin.H{
		"title":        "Website",
		"description":  "landing page",
		"deadline":     deadline,
		"assignee_ids": []int64{2, 3},
	})
	assert.Equal(t, errors.CodeSuccess, resp.Code)
	svc.AssertExpectations(t)
}

func TestTaskHandler_GetByID(t *testing.T) {
	svc := &mockTaskService{}
	h := NewTaskHandler(svc)
	r := gin.New()
	r.GET("/task/:id", h.GetByID)

	resp := doJSON(t, r, http.MethodGet, "/task/abc", nil)
	assert.Equal(t, errors.CodeBadRequest, resp.Code)

	svc.On("GetByID", int64(404)).Return(nil, errors.ErrTaskNotFound).Once()
	resp = doJSON(t, r, http.MethodGet, "/task/404", nil)
	assert.Equal(t, errors.CodeNotFound, resp.Code)
	svc.AssertExpectations(t)
}

func TestTaskHandler_UpdateAssigneeStatus(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		body     gin.H
		wantUser int64
		wantCode int
	}{
		{"员工更新自己", constants.RoleEmployee, gin.H{"task_id": 1, "status": "in progress"}, 5, errors.CodeSuccess},
		{"员工显式指定自己", constants.RoleEmployee, gin.H{"task_id": 1, "user_id": 5, "status": "completed"}, 5, errors.CodeSuccess},
		{"员工代他人更新", constants.RoleEmployee, gin.H{"task_id": 1, "user_id": 9, "status": "completed"}, 0, errors.CodeForbidden},
		{"经理代他人更新", constants.RoleManager, gin.H{"task_id": 1, "user_id": 9, "status": "completed"}, 9, errors.CodeSuccess},
		{"非法状态", constants.RoleEmployee, gin.H{"task_id": 1, "status": "done"}, 0, errors.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTaskService{}
			h := NewTaskHandler(svc)
			r := gin.New()
			r.PUT("/task/assignee/status", asUser(5, tt.role), func(c *gin.Context) {
				h.UpdateAssigneeStatus(c, canAccess(auth.PermTaskUpdate))
			})

			if tt.wantUser != 0 {
				svc.On("UpdateAssigneeStatus", int64(1), tt.wantUser, tt.body["status"]).
					Return(&model.Task{OverallStatus: constants.OverallStatusInProgress}, nil).Once()
			}

			resp := doJSON(t, r, http.MethodPut, "/task/assignee/status", tt.body)
			assert.Equal(t, tt.wantCode, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}

type mockAttendanceService struct {
	service.AttendanceService
	mock.Mock
}

func (m *mockAttendanceService) CheckIn(userID int64) (*model.Attendance, error) {
	args := m.Called(userID)
	record, _ := args.Get(0).(*model.Attendance)
	return record, args.Error(1)
}

func (m *mockAttendanceService) EmployeeSheet(from, to string) ([]*dto.EmployeeAttendance, error) {
	args := m.Called(from, to)
	sheet, _ := args.Get(0).([]*dto.EmployeeAttendance)
	return sheet, args.Error(1)
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	svc := &mockAttendanceService{}
	h := NewAttendanceHandler(svc)
	r := gin.New()
	r.POST("/attendance/checkin", asUser(4, constants.RoleEmployee), h.CheckIn)

	svc.On("CheckIn", int64(4)).Return(&model.Attendance{UserID: 4, WorkDate: "2024-05-10"}, nil).Once()
	resp := doJSON(t, r, http.MethodPost, "/attendance/checkin", nil)
	assert.Equal(t, errors.CodeSuccess, resp.Code)

	svc.On("CheckIn", int64(4)).Return(nil, errors.ErrAlreadyCheckedIn).Once()
	resp = doJSON(t, r, http.MethodPost, "/attendance/checkin", nil)
	assert.Equal(t, errors.CodeConflict, resp.Code)
	assert.Equal(t, errors.ErrAlreadyCheckedIn.Message, resp.Message)

	svc.AssertExpectations(t)
}

func TestAttendanceHandler_EmployeeSheet(t *testing.T) {
	svc := &mockAttendanceService{}
	h := NewAttendanceHandler(svc)
	r := gin.New()
	r.GET("/attendance/employees", h.EmployeeSheet)

	resp := doJSON(t, r, http.MethodGet, "/attendance/employees?from=05/01/2024", nil)
	assert.Equal(t, errors.CodeBadRequest, resp.Code)

	svc.On("EmployeeSheet", "2024-05-01", "2024-05-07").Return([]*dto.EmployeeAttendance{}, nil).Once()
	resp = doJSON(t, r, http.MethodGet, "/attendance/employees?from=2024-05-01&to=2024-05-07", nil)
	assert.Equal(t, errors.CodeSuccess, resp.Code)
	svc.AssertExpectations(t)
}

type mockRequestService struct {
	service.TeamMemberRequestService
	mock.Mock
}

func (m *mockRequestService) UpdateStatus(id, reviewerID int64, req *dto.TeamMemberRequestReview) (*model.TeamMemberRequest, error) {
	args := m.Called(id, reviewerID, req)
	request, _ := args.Get(0).(*model.TeamMemberRequest)
	return request, args.Error(1)
}

func TestTeamMemberRequestHandler_UpdateStatus(t *testing.T) {
	svc := &mockRequestService{}
	h := NewTeamMemberRequestHandler(svc)
	r := gin.New()
	r.PUT("/team-member-request/:id/status", asUser(2, constants.RoleManager), h.UpdateStatus)

	resp := doJSON(t, r, http.MethodPut, "/team-member-request/8/status", gin.H{"status": "Pending"})
	assert.Equal(t, errors.CodeBadRequest, resp.Code)

	approved := mock.MatchedBy(func(req *dto.TeamMemberRequestReview) bool { return req.Status == constants.RequestStatusApproved })
	svc.On("UpdateStatus", int64(8), int64(2), approved).
		Return(&model.TeamMemberRequest{Status: constants.RequestStatusApproved}, nil).Once()
	resp = doJSON(t, r, http.MethodPut, "/team-member-request/8/status", gin.H{"status": "Approved"})
	assert.Equal(t, errors.CodeSuccess, resp.Code)

	svc.On("UpdateStatus", int64(8), int64(2), approved).Return(nil, errors.ErrRequestAlreadyReviewed).Once()
	resp = doJSON(t, r, http.MethodPut, "/team-member-request/8/status", gin.H{"status": "Approved"})
	assert.Equal(t, errors.CodeConflict, resp.Code)

	svc.AssertExpectations(t)
}

type mockAuthService struct {
	service.AuthService
	mock.Mock
}

func (m *mockAuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	resp := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@pcs.test", "password": "x", "auth_type": "oauth"})
	assert.Equal(t, errors.CodeBadRequest, resp.Code)

	svc.On("Login", &dto.LoginRequest{Email: "a@pcs.test", Password: "secret1"}).
		Return(nil, errors.ErrInvalidCredentials).Once()
	resp = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@pcs.test", "password": "secret1"})
	assert.Equal(t, errors.CodeAuthError, resp.Code)

	svc.AssertExpectations(t)
}
