package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		need  Permission
		want  bool
	}{
		{"admin 全部放行", []string{"admin"}, PermRequestReview, true},
		{"manager 任务通配", []string{"manager"}, PermTaskDelete, true},
		{"manager 审批", []string{"manager"}, PermRequestReview, true},
		{"manager 考勤", []string{"manager"}, PermAttendanceView, true},
		{"employee 无权限", []string{"employee"}, PermTaskCreate, false},
		{"未知角色", []string{"guest"}, PermTaskCreate, false},
		{"无角色", nil, PermTaskCreate, false},
		{"多角色合并", []string{"employee", "manager"}, PermTaskAssign, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.roles, tt.need))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, match("task:*", "task:create"))
	assert.True(t, match("task:*", "task:assign:bulk"))
	assert.False(t, match("task:*", "request:review"))
	assert.False(t, match("task:create", "task:create:sub"))
	assert.False(t, match("task:create:sub", "task:create"))
	// 第一条不匹配时继续检查后续权限
	assert.True(t, allow([]Permission{"request:review", "task:*"}, "task:update"))
}

func TestIsRole(t *testing.T) {
	assert.True(t, IsRole("admin"))
	assert.True(t, IsRole("employee"))
	assert.False(t, IsRole("root"))
}
