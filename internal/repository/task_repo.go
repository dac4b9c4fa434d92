package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

// AssigneeMutator 在任务行锁内修改 task.Assignees，返回需要写入的成员记录
type AssigneeMutator func(task *model.Task) (changed []model.TaskAssignee, err error)

type TaskRepository interface {
	Create(task *model.Task) error
	FindByID(id int64, opts ...QueryOption) (*model.Task, error)
	List(page, pageSize int, keyword, overallStatus string) ([]*model.Task, int64, error)
	ListByAssignee(userID int64) ([]model.Task, error)
	ListOverdue(now time.Time) ([]*model.Task, error)
	UpdateFields(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	MutateAssignees(id int64, fn AssigneeMutator) (*model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create 创建任务及初始成员，整体状态在写入前推导
func (r *taskRepository) Create(task *model.Task) error {
	task.OverallStatus = progress.DeriveOverallStatus(task.Assignees)
	if err := r.db.Create(task).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建任务失败", err)
	}
	return nil
}

func (r *taskRepository) FindByID(id int64, opts ...QueryOption) (*model.Task, error) {
	var task model.Task
	query := applyOptions(r.db.Preload("Assignees"), opts)
	if err := query.First(&task, id).Error; err != nil {
		return nil, translate(err, pkgErrors.ErrTaskNotFound, "查询任务失败")
	}
	return &task, nil
}

func (r *taskRepository) List(page, pageSize int, keyword, overallStatus string) ([]*model.Task, int64, error) {
	var tasks []*model.Task
	var total int64

	query := r.db.Model(&model.Task{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if overallStatus != "" {
		query = query.Where("overall_status = ?", overallStatus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务失败", err)
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Assignees").
		Order("deadline ASC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务列表失败", err)
	}

	return tasks, total, nil
}

func (r *taskRepository) ListByAssignee(userID int64) ([]model.Task, error) {
	var tasks []model.Task
	sub := r.db.Model(&model.TaskAssignee{}).Select("task_id").Where("user_id = ?", userID)
	err := r.db.Preload("Assignees").
		Where("id IN (?)", sub).
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询我的任务失败", err)
	}
	return tasks, nil
}

// ListOverdue 已过截止时间且未完成的任务
func (r *taskRepository) ListOverdue(now time.Time) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Preload("Assignees").
		Where("deadline < ? AND overall_status <> ?", now, constants.OverallStatusCompleted).
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询逾期任务失败", err)
	}
	return tasks, nil
}

// UpdateFields 更新基本信息，overall_status 不在可写字段内
func (r *taskRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	delete(fields, "overall_status")
	if len(fields) == 0 {
		return nil
	}
	result := r.db.Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务失败", result.Error)
	}
	return nil
}

func (r *taskRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskAssignee{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除任务成员失败", err)
		}
		result := tx.Delete(&model.Task{}, id)
		if result.Error != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除任务失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.ErrTaskNotFound
		}
		return nil
	})
}

// MutateAssignees 锁定任务行后修改成员并重算整体状态，同一事务提交
func (r *taskRepository) MutateAssignees(id int64, fn AssigneeMutator) (*model.Task, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		_, err := mutateAssignees(tx, id, fn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(id, WithPreload("Assignees.User"))
}

func mutateAssignees(tx *gorm.DB, id int64, fn AssigneeMutator) (*model.Task, error) {
	var task model.Task
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Assignees").
		First(&task, id).Error
	if err != nil {
		return nil, translate(err, pkgErrors.ErrTaskNotFound, "查询任务失败")
	}

	changed, err := fn(&task)
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&changed).Error
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "保存任务成员失败", err)
		}
	}

	task.OverallStatus = progress.DeriveOverallStatus(task.Assignees)
	err = tx.Model(&model.Task{}).Where("id = ?", id).Update("overall_status", task.OverallStatus).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务状态失败", err)
	}
	return &task, nil
}
