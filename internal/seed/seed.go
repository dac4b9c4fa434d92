// Package seed 从 YAML 文件初始化账号，已存在的邮箱跳过
package seed

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pcs-crm/internal/model"
	"pcs-crm/internal/pkg/auth"
	"pcs-crm/internal/pkg/crypto"
	"pcs-crm/pkg/constants"
	"pcs-crm/pkg/errors"
)

// File 种子文件
type File struct {
	Users []User `yaml:"users"`
}

// User 种子账号
type User struct {
	EmployeeID  string   `yaml:"employee_id"`
	FirstName   string   `yaml:"first_name"`
	LastName    string   `yaml:"last_name"`
	Email       string   `yaml:"email"`
	Phone       string   `yaml:"phone"`
	Branch      string   `yaml:"branch"`
	Designation string   `yaml:"designation"`
	Role        string   `yaml:"role"`
	Password    string   `yaml:"password"`
	Skills      []string `yaml:"skills"`
}

// UserStore 种子写入所需的用户存储
type UserStore interface {
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) error
}

// Load 读取并校验种子文件
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取种子文件失败: %w", err)
	}
	return Parse(raw)
}

// Parse 解析种子内容
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("解析种子文件失败: %w", err)
	}

	for i, u := range f.Users {
		if u.Email == "" || u.EmployeeID == "" || u.Phone == "" {
			return nil, fmt.Errorf("users[%d]: email、employee_id、phone 不能为空", i)
		}
		if u.Role == "" {
			f.Users[i].Role = constants.RoleEmployee
		} else if !auth.IsRole(u.Role) {
			return nil, fmt.Errorf("users[%d]: 未知角色 %s", i, u.Role)
		}
		if len(u.Password) < 6 {
			return nil, fmt.Errorf("users[%d]: 密码至少6位", i)
		}
	}
	return &f, nil
}

// Apply 写入不存在的账号，返回新建数量
func Apply(store UserStore, f *File) (int, error) {
	created := 0
	for _, u := range f.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))

		_, err := store.FindByEmail(email)
		if err == nil {
			continue
		}
		if !stderrors.Is(err, errors.ErrUserNotFound) {
			return created, err
		}

		hash, err := crypto.HashPassword(u.Password)
		if err != nil {
			return created, fmt.Errorf("加密密码失败: %w", err)
		}

		user := &model.User{
			EmployeeID:   u.EmployeeID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Email:        email,
			Phone:        u.Phone,
			Branch:       u.Branch,
			Designation:  u.Designation,
			Role:         u.Role,
			AuthProvider: constants.AuthTypeLocal,
			Password:     hash,
			Skills:       u.Skills,
		}
		if err := store.Create(user); err != nil {
			return created, fmt.Errorf("创建用户 %s 失败: %w", email, err)
		}
		created++
	}
	return created, nil
}
