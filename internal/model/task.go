package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TaskTableName         = "tasks"
	TaskAssigneeTableName = "task_assignees"
)

// Task 任务(项目)
// OverallStatus 由负责人状态推导，只在仓储层随负责人变更一起写入
type Task struct {
	BaseModel
	Title             string                      `gorm:"size:200;not null" json:"title"`
	Description       string                      `gorm:"type:text" json:"description"`
	Deadline          time.Time                   `gorm:"not null;index" json:"deadline"`
	DocumentURLs      datatypes.JSONSlice[string] `gorm:"column:document_urls;type:json" json:"document_urls"`
	CreatedBy         int64                       `gorm:"not null;index" json:"created_by"`
	OverallStatus     string                      `gorm:"size:20;not null;default:unassigned;index" json:"overall_status"`
	RequestTeamMember bool                        `gorm:"not null;default:false" json:"request_team_member"`

	Assignees []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignees"`
	Creator   *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Task) TableName() string {
	return TaskTableName
}

// AssigneeIDs 当前负责人ID
func (t *Task) AssigneeIDs() []int64 {
	ids := make([]int64, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// TaskAssignee 任务负责人，(task_id, user_id) 唯一
type TaskAssignee struct {
	TaskID    int64     `gorm:"primaryKey;autoIncrement:false" json:"task_id"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	Status    string    `gorm:"size:20;not null;default:'not started'" json:"status"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TaskAssignee) TableName() string {
	return TaskAssigneeTableName
}
