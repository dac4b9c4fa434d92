package dto

import (
	"time"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/model"
)

// TaskCreateRequest 创建任务
type TaskCreateRequest struct {
	Title        string    `json:"title" binding:"required,max=200"`
	Description  string    `json:"description" binding:"required"`
	Deadline     time.Time `json:"deadline" binding:"required"`
	DocumentURLs []string  `json:"document_urls" binding:"omitempty,dive,url"`
	AssigneeIDs  []int64   `json:"assignee_ids" binding:"omitempty,dive,min=1"`
}

// TaskUpdateRequest 更新任务基本信息，整体状态不可直接修改
type TaskUpdateRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description"`
	Deadline     *time.Time `json:"deadline"`
	DocumentURLs []string   `json:"document_urls" binding:"omitempty,dive,url"`
}

// TaskListQuery 任务列表查询
type TaskListQuery struct {
	PageQuery
	OverallStatus string `form:"overall_status" binding:"omitempty,overall_status"`
}

// AssignEmployeesRequest 分配成员
type AssignEmployeesRequest struct {
	TaskID      int64   `json:"task_id" binding:"required,min=1"`
	EmployeeIDs []int64 `json:"employee_ids" binding:"required,min=1,dive,min=1"`
}

// UpdateAssigneeStatusRequest 更新成员状态
type UpdateAssigneeStatusRequest struct {
	TaskID int64  `json:"task_id" binding:"required,min=1"`
	UserID int64  `json:"user_id" binding:"omitempty,min=1"` // 不传则为当前用户
	Status string `json:"status" binding:"required,assignee_status"`
}

// TaskDetailResponse 任务详情及统计
type TaskDetailResponse struct {
	*model.Task
	Stats progress.ProjectStats `json:"stats"`
}
