package dto

import "time"

// UserListQuery 用户列表查询
type UserListQuery struct {
	PageQuery
	Role string `form:"role" binding:"omitempty,oneof=admin manager employee"`
}

// UserResponse 用户档案
type UserResponse struct {
	ID          int64      `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Branch      string     `json:"branch"`
	Designation string     `json:"designation"`
	Role        string     `json:"role"`
	Avatar      *string    `json:"avatar"`
	Skills      []string   `json:"skills"`
	LastActive  *time.Time `json:"last_active"`
}

// UpdateAvatarRequest 更新头像
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,url,max=512"`
}

// SkillRequest 添加/删除技能
type SkillRequest struct {
	Skill string `json:"skill" binding:"required,max=100"`
}
