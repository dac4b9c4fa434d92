package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

// ReviewDecision 审批结果
type ReviewDecision struct {
	Status     string
	ReviewerID int64
	Comment    *string
	ReviewedAt time.Time
	// OnApprove 审批通过且关联了项目时，在同一事务内修改项目成员
	OnApprove AssigneeMutator
}

type TeamMemberRequestRepository interface {
	Create(req *model.TeamMemberRequest) error
	FindByID(id int64) (*model.TeamMemberRequest, error)
	List(page, pageSize int, status string) ([]*model.TeamMemberRequest, int64, error)
	Review(id int64, decision ReviewDecision) (*model.TeamMemberRequest, error)
}

type teamMemberRequestRepository struct {
	db *gorm.DB
}

func NewTeamMemberRequestRepository(db *gorm.DB) TeamMemberRequestRepository {
	return &teamMemberRequestRepository{db: db}
}

// Create 关联项目时同一事务内标记项目有待处理的加人申请
func (r *teamMemberRequestRepository) Create(req *model.TeamMemberRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建成员申请失败", err)
		}
		if req.ProjectID == nil {
			return nil
		}
		err := tx.Model(&model.Task{}).Where("id = ?", *req.ProjectID).Update("request_team_member", true).Error
		if err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务失败", err)
		}
		return nil
	})
}

func (r *teamMemberRequestRepository) FindByID(id int64) (*model.TeamMemberRequest, error) {
	var req model.TeamMemberRequest
	if err := r.db.Preload("Sender").First(&req, id).Error; err != nil {
		return nil, translate(err, pkgErrors.ErrRequestNotFound, "查询成员申请失败")
	}
	return &req, nil
}

func (r *teamMemberRequestRepository) List(page, pageSize int, status string) ([]*model.TeamMemberRequest, int64, error) {
	var reqs []*model.TeamMemberRequest
	var total int64

	query := r.db.Model(&model.TeamMemberRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计成员申请失败", err)
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Sender").
		Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询成员申请列表失败", err)
	}

	return reqs, total, nil
}

// Review 只允许从 Pending 流转，项目成员合并与状态更新在同一事务。
// 项目已被删除时跳过合并，仍记录审批结果；项目没有剩余 Pending 申请时清除标记。
func (r *teamMemberRequestRepository) Review(id int64, decision ReviewDecision) (*model.TeamMemberRequest, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var req model.TeamMemberRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error
		if err != nil {
			return translate(err, pkgErrors.ErrRequestNotFound, "查询成员申请失败")
		}
		if req.Status != constants.RequestStatusPending {
			return pkgErrors.ErrRequestAlreadyReviewed
		}

		if decision.Status == constants.RequestStatusApproved && req.ProjectID != nil && decision.OnApprove != nil {
			_, err := mutateAssignees(tx, *req.ProjectID, decision.OnApprove)
			if err != nil && !errors.Is(err, pkgErrors.ErrTaskNotFound) {
				return err
			}
		}

		result := tx.Model(&model.TeamMemberRequest{}).
			Where("id = ? AND status = ?", id, constants.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":         decision.Status,
				"reviewed_by":    decision.ReviewerID,
				"reviewed_at":    decision.ReviewedAt,
				"review_comment": decision.Comment,
			})
		if result.Error != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新成员申请失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.ErrRequestAlreadyReviewed
		}

		if req.ProjectID != nil {
			return syncRequestFlag(tx, *req.ProjectID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func syncRequestFlag(tx *gorm.DB, projectID int64) error {
	var pending int64
	err := tx.Model(&model.TeamMemberRequest{}).
		Where("project_id = ? AND status = ?", projectID, constants.RequestStatusPending).
		Count(&pending).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计成员申请失败", err)
	}
	err = tx.Model(&model.Task{}).Where("id = ?", projectID).Update("request_team_member", pending > 0).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务失败", err)
	}
	return nil
}
