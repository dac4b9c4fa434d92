package auth

import (
	"strings"

	"pcs-crm/pkg/constants"
)

// Role 内置角色
type Role string

const (
	RoleAdmin    Role = constants.RoleAdmin
	RoleManager  Role = constants.RoleManager
	RoleEmployee Role = constants.RoleEmployee
)

// Permission 内置权限
type Permission string

const (
	PermTaskCreate Permission = "task:create"
	PermTaskUpdate Permission = "task:update"
	PermTaskDelete Permission = "task:delete"
	PermTaskAssign Permission = "task:assign"

	PermRequestReview Permission = "request:review"

	PermAttendanceView Permission = "attendance:view"
)

// RolePermissions 每个角色拥有的权限集合
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		"*",
	},
	RoleManager: {
		"task:*",
		"request:review",
		"attendance:view",
	},
	RoleEmployee: {},
}

// IsRole 是否为内置角色
func IsRole(r string) bool {
	_, ok := RolePermissions[Role(r)]
	return ok
}

// Allow 判断一组角色是否包含所需权限，支持通配符
func Allow(roles []string, need Permission) bool {
	permissions := collectPermissions(roles)

	return len(permissions) > 0 && allow(permissions, need)
}

func collectPermissions(roles []string) []Permission {
	perms := make([]Permission, 0)
	for _, r := range roles {
		if ps, ok := RolePermissions[Role(r)]; ok {
			perms = append(perms, ps...)
		}
	}
	return perms
}

func allow(have []Permission, need Permission) bool {
	for _, p := range have {
		if match(p, need) {
			return true
		}
	}
	return false
}

// match 单条权限匹配, "*" 段匹配该位置及之后的所有段
func match(p, need Permission) bool {
	if p == need || p == "*" {
		return true
	}

	allowParts := strings.Split(string(p), ":")
	needParts := strings.Split(string(need), ":")

	for i, part := range allowParts {
		if part == "*" {
			return i < len(needParts)
		}
		if i >= len(needParts) || part != needParts[i] {
			return false
		}
	}
	return len(allowParts) == len(needParts)
}
