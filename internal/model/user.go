package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const UserTableName = "users"

// User 员工账号及档案
type User struct {
	BaseModelWithSoftDelete
	EmployeeID   string                      `gorm:"size:50;not null;uniqueIndex" json:"employee_id"`
	FirstName    string                      `gorm:"size:100;not null" json:"first_name"`
	LastName     string                      `gorm:"size:100;not null" json:"last_name"`
	Email        string                      `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Phone        string                      `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Branch       string                      `gorm:"size:100" json:"branch"`
	Designation  string                      `gorm:"size:100" json:"designation"`
	Role         string                      `gorm:"size:20;not null;default:employee;index" json:"role"`
	AuthProvider string                      `gorm:"size:20;not null;default:local" json:"auth_provider"`
	Password     string                      `gorm:"size:255" json:"-"` // LDAP 用户为空
	Avatar       *string                     `gorm:"size:512" json:"avatar"`
	Skills       datatypes.JSONSlice[string] `gorm:"type:json" json:"skills"`
	LastActive   *time.Time                  `json:"last_active"`
}

// TableName 指定表名
func (User) TableName() string {
	return UserTableName
}

// FullName 姓名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
