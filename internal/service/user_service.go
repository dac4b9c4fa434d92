package service

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/repository"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

type UserService interface {
	List(query *dto.UserListQuery) ([]*dto.UserResponse, int64, error)
	ListEmployees() ([]*dto.UserResponse, error)
	GetProfile(userID int64) (*dto.UserResponse, error)
	UpdateAvatar(userID int64, avatar string) (*dto.UserResponse, error)
	AddSkill(userID int64, skill string) (*dto.UserResponse, error)
	RemoveSkill(userID int64, skill string) (*dto.UserResponse, error)
	TouchSession(userID int64) error
}

type userService struct {
	userRepo    repository.UserRepository
	idleTimeout time.Duration
	now         func() time.Time
}

func NewUserService(userRepo repository.UserRepository, idleTimeout time.Duration) UserService {
	return &userService{
		userRepo:    userRepo,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (s *userService) List(query *dto.UserListQuery) ([]*dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(query.GetPage(), query.GetPageSize(), query.Keyword, query.Role)
	if err != nil {
		return nil, 0, err
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserResponse { return toUserResponse(u) }), total, nil
}

func (s *userService) ListEmployees() ([]*dto.UserResponse, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, err
	}
	employees := lo.Filter(users, func(u *model.User, _ int) bool {
		return u.Role == constants.RoleEmployee
	})
	return lo.Map(employees, func(u *model.User, _ int) *dto.UserResponse { return toUserResponse(u) }), nil
}

func (s *userService) GetProfile(userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateAvatar(userID int64, avatar string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = &avatar
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// AddSkill 技能已存在时不重复添加
func (s *userService) AddSkill(userID int64, skill string) (*dto.UserResponse, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "技能不能为空")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if lo.Contains(user.Skills, skill) {
		return toUserResponse(user), nil
	}

	user.Skills = append(user.Skills, skill)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) RemoveSkill(userID int64, skill string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	skill = strings.TrimSpace(skill)
	if !lo.Contains(user.Skills, skill) {
		return nil, pkgErrors.New(pkgErrors.CodeNotFound, "技能不存在")
	}

	user.Skills = lo.Without(user.Skills, skill)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// TouchSession 空闲超时则要求重新登录，否则刷新最后活跃时间
func (s *userService) TouchSession(userID int64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if pkgErrors.CodeOf(err) == pkgErrors.CodeNotFound {
			return pkgErrors.ErrUnauthorized
		}
		return err
	}

	now := s.now()
	if user.LastActive != nil && now.Sub(*user.LastActive) > s.idleTimeout {
		return pkgErrors.ErrSessionExpired
	}
	return s.userRepo.UpdateLastActive(userID, now)
}
