package service

import (
	"time"

	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/repository"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

type TeamMemberRequestService interface {
	Create(senderID int64, req *dto.TeamMemberRequestCreate) (*model.TeamMemberRequest, error)
	List(query *dto.TeamMemberRequestListQuery) ([]*model.TeamMemberRequest, int64, error)
	GetByID(id int64) (*model.TeamMemberRequest, error)
	UpdateStatus(id, reviewerID int64, req *dto.TeamMemberRequestReview) (*model.TeamMemberRequest, error)
}

type teamMemberRequestService struct {
	repo     repository.TeamMemberRequestRepository
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewTeamMemberRequestService(
	repo repository.TeamMemberRequestRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) TeamMemberRequestService {
	return &teamMemberRequestService{
		repo:     repo,
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *teamMemberRequestService) Create(senderID int64, req *dto.TeamMemberRequestCreate) (*model.TeamMemberRequest, error) {
	if len(req.SelectedMembers) == 0 {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "至少选择一名成员")
	}
	members, err := ensureUsers(s.userRepo, req.SelectedMembers)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if _, err := s.taskRepo.FindByID(*req.ProjectID); err != nil {
			return nil, err
		}
	}

	request := &model.TeamMemberRequest{
		SenderID:        senderID,
		ProjectID:       req.ProjectID,
		ProjectTitle:    req.ProjectTitle,
		MemberType:      req.MemberType,
		Reason:          req.Reason,
		SelectedMembers: members,
		Status:          constants.RequestStatusPending,
	}
	if err := s.repo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *teamMemberRequestService) List(query *dto.TeamMemberRequestListQuery) ([]*model.TeamMemberRequest, int64, error) {
	return s.repo.List(query.GetPage(), query.GetPageSize(), query.Status)
}

func (s *teamMemberRequestService) GetByID(id int64) (*model.TeamMemberRequest, error) {
	return s.repo.FindByID(id)
}

// UpdateStatus 审批，只允许 Pending -> Approved / Rejected
func (s *teamMemberRequestService) UpdateStatus(id, reviewerID int64, req *dto.TeamMemberRequestReview) (*model.TeamMemberRequest, error) {
	if req.Status != constants.RequestStatusApproved && req.Status != constants.RequestStatusRejected {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "审批结果只能是 Approved 或 Rejected")
	}

	request, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if request.Status != constants.RequestStatusPending {
		return nil, pkgErrors.ErrRequestAlreadyReviewed
	}

	decision := repository.ReviewDecision{
		Status:     req.Status,
		ReviewerID: reviewerID,
		Comment:    req.Comment,
		ReviewedAt: s.now(),
	}
	if req.Status == constants.RequestStatusApproved {
		decision.OnApprove = assignMutator(s.userRepo, request.SelectedMembers)
	}

	return s.repo.Review(id, decision)
}
