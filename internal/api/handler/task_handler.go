package handler

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/api/middleware"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/service"
	"pcs-crm/pkg/errors"
	"pcs-crm/pkg/utils"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create 创建任务
// @Summary 创建任务
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.TaskCreateRequest true "创建任务请求"
// @Success 200 {object} utils.Response{data=model.Task}
// @Router /api/v1/task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	task, err := h.taskService.Create(middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, task)
}

// List 任务列表
// @Summary 任务列表
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "标题关键字"
// @Param overall_status query string false "整体状态"
// @Success 200 {object} utils.PageResponse{data=[]model.Task}
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BindError(c, err)
		return
	}

	tasks, total, err := h.taskService.List(&query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.PageSuccess(c, tasks, total, query.GetPage(), query.GetPageSize())
}

// Mine 我的任务
// @Summary 当前用户被分配的任务
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]progress.MyTaskView}
// @Router /api/v1/tasks/mine [get]
func (h *TaskHandler) Mine(c *gin.Context) {
	tasks, err := h.taskService.MyTasks(middleware.CurrentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tasks)
}

// GetByID 任务详情
// @Summary 获取任务
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "任务ID"
// @Success 200 {object} utils.Response{data=model.Task}
// @Router /api/v1/task/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.BindError(c, err)
		return
	}

	task, err := h.taskService.GetByID(param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, task)
}

// GetDetail 任务详情及进度统计
// @Summary 任务进度统计
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "任务ID"
// @Success 200 {object} utils.Response{data=dto.TaskDetailResponse}
// @Router /api/v1/task/{id}/detail [get]
func (h *TaskHandler) GetDetail(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.BindError(c, err)
		return
	}

	detail, err := h.taskService.GetDetail(param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, detail)
}

// Update 更新任务
// @Summary 更新任务
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "任务ID"
// @Param request body dto.TaskUpdateRequest true "更新任务请求"
// @Success 200 {object} utils.Response{data=model.Task}
// @Router /api/v1/task/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.BindError(c, err)
		return
	}

	var req dto.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	task, err := h.taskService.Update(param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, task)
}

// Delete 删除任务
// @Summary 删除任务
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "任务ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/task/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.BindError(c, err)
		return
	}

	if err := h.taskService.Delete(param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// Assign 分配成员
// @Summary 分配成员，已分配的成员保持原状态
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.AssignEmployeesRequest true "分配请求"
// @Success 200 {object} utils.Response{data=model.Task}
// @Router /api/v1/task/assign [put]
func (h *TaskHandler) Assign(c *gin.Context) {
	var req dto.AssignEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	task, err := h.taskService.AssignEmployees(req.TaskID, req.EmployeeIDs)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, task)
}

// UpdateAssigneeStatus 更新成员状态
// @Summary 更新成员状态
// @Description 员工只能更新自己的状态，有 task:update 权限的角色可以代他人更新
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateAssigneeStatusRequest true "状态请求"
// @Success 200 {object} utils.Response{data=model.Task}
// @Router /api/v1/task/assignee/status [put]
func (h *TaskHandler) UpdateAssigneeStatus(c *gin.Context, canManage func(role string) bool) {
	var req dto.UpdateAssigneeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	if req.UserID != 0 && req.UserID != userID {
		if !canManage(middleware.CurrentRole(c)) {
			utils.Error(c, errors.ErrPermissionDenied)
			return
		}
		userID = req.UserID
	}

	task, err := h.taskService.UpdateAssigneeStatus(req.TaskID, userID, req.Status)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, task)
}
