package service

import (
	"fmt"

	"github.com/samber/lo"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/repository"
	pkgErrors "pcs-crm/pkg/errors"
)

// ensureUsers 校验用户全部存在，返回去重后的ID
func ensureUsers(userRepo repository.UserRepository, ids []int64) ([]int64, error) {
	ids = lo.Uniq(ids)
	users, err := userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	found := lo.Map(users, func(u *model.User, _ int) int64 { return u.ID })
	if missing := lo.Without(ids, found...); len(missing) > 0 {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("用户不存在: %v", missing))
	}
	return ids, nil
}

// assignMutator 集合并方式添加成员，已有成员状态不变
func assignMutator(userRepo repository.UserRepository, userIDs []int64) repository.AssigneeMutator {
	return func(task *model.Task) ([]model.TaskAssignee, error) {
		ids, err := ensureUsers(userRepo, userIDs)
		if err != nil {
			return nil, err
		}
		merged, added := progress.MergeAssignees(task.ID, task.Assignees, ids)
		task.Assignees = merged
		return added, nil
	}
}

func toUserResponse(u *model.User) *dto.UserResponse {
	skills := []string(u.Skills)
	if skills == nil {
		skills = []string{}
	}
	return &dto.UserResponse{
		ID:          u.ID,
		EmployeeID:  u.EmployeeID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		Branch:      u.Branch,
		Designation: u.Designation,
		Role:        u.Role,
		Avatar:      u.Avatar,
		Skills:      skills,
		LastActive:  u.LastActive,
	}
}

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          u.ID,
		EmployeeID:  u.EmployeeID,
		Name:        u.FullName(),
		Email:       u.Email,
		Role:        u.Role,
		Designation: u.Designation,
		AuthType:    u.AuthProvider,
	}
}
