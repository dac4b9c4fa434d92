package service

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/repository"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

type TaskService interface {
	Create(creatorID int64, req *dto.TaskCreateRequest) (*model.Task, error)
	List(query *dto.TaskListQuery) ([]*model.Task, int64, error)
	GetByID(id int64) (*model.Task, error)
	GetDetail(id int64) (*dto.TaskDetailResponse, error)
	Update(id int64, req *dto.TaskUpdateRequest) (*model.Task, error)
	Delete(id int64) error
	AssignEmployees(taskID int64, employeeIDs []int64) (*model.Task, error)
	UpdateAssigneeStatus(taskID, userID int64, status string) (*model.Task, error)
	MyTasks(userID int64) ([]progress.MyTaskView, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *taskService) Create(creatorID int64, req *dto.TaskCreateRequest) (*model.Task, error) {
	assigneeIDs, err := ensureUsers(s.userRepo, req.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Deadline:     req.Deadline,
		DocumentURLs: lo.Ternary(req.DocumentURLs == nil, []string{}, req.DocumentURLs),
		CreatedBy:    creatorID,
	}
	task.Assignees, _ = progress.MergeAssignees(0, nil, assigneeIDs)

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(query *dto.TaskListQuery) ([]*model.Task, int64, error) {
	return s.taskRepo.List(query.GetPage(), query.GetPageSize(), query.Keyword, query.OverallStatus)
}

func (s *taskService) GetByID(id int64) (*model.Task, error) {
	return s.taskRepo.FindByID(id, repository.WithPreload("Assignees.User"))
}

// GetDetail 任务详情及统计
func (s *taskService) GetDetail(id int64) (*dto.TaskDetailResponse, error) {
	task, err := s.taskRepo.FindByID(id, repository.WithPreload("Assignees.User"), repository.WithPreload("Creator"))
	if err != nil {
		return nil, err
	}
	return &dto.TaskDetailResponse{
		Task:  task,
		Stats: progress.ComputeProjectStats(task, s.now()),
	}, nil
}

func (s *taskService) Update(id int64, req *dto.TaskUpdateRequest) (*model.Task, error) {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Deadline != nil {
		fields["deadline"] = *req.Deadline
	}
	if req.DocumentURLs != nil {
		fields["document_urls"] = datatypes.JSONSlice[string](req.DocumentURLs)
	}

	if err := s.taskRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *taskService) Delete(id int64) error {
	return s.taskRepo.Delete(id)
}

// AssignEmployees 未知用户ID视为参数错误
func (s *taskService) AssignEmployees(taskID int64, employeeIDs []int64) (*model.Task, error) {
	return s.taskRepo.MutateAssignees(taskID, assignMutator(s.userRepo, employeeIDs))
}

// UpdateAssigneeStatus 不校验流转顺序，任意合法状态都可写入
func (s *taskService) UpdateAssigneeStatus(taskID, userID int64, status string) (*model.Task, error) {
	if !constants.IsAssigneeStatus(status) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "无效的成员状态: "+status)
	}

	return s.taskRepo.MutateAssignees(taskID, func(task *model.Task) ([]model.TaskAssignee, error) {
		if !progress.SetAssigneeStatus(task.Assignees, userID, status) {
			return nil, pkgErrors.ErrAssigneeNotFound
		}
		changed, _ := lo.Find(task.Assignees, func(a model.TaskAssignee) bool { return a.UserID == userID })
		return []model.TaskAssignee{changed}, nil
	})
}

func (s *taskService) MyTasks(userID int64) ([]progress.MyTaskView, error) {
	tasks, err := s.taskRepo.ListByAssignee(userID)
	if err != nil {
		return nil, err
	}
	return progress.MyTasks(tasks, userID), nil
}
