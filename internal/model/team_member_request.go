package model

import "time"

const TeamMemberRequestTableName = "team_member_requests"

// TeamMemberRequest 申请将成员加入项目
type TeamMemberRequest struct {
	BaseModel
	SenderID        int64      `gorm:"not null;index" json:"sender_id"`
	ProjectID       *int64     `gorm:"index" json:"project_id"`
	ProjectTitle    string     `gorm:"size:200;not null" json:"project_title"`
	MemberType      string     `gorm:"size:100;not null" json:"member_type"`
	Reason          string     `gorm:"type:text;not null" json:"reason"`
	SelectedMembers Int64List  `gorm:"type:json;not null" json:"selected_members"`
	Status          string     `gorm:"size:20;not null;default:Pending;index" json:"status"`
	ReviewedBy      *int64     `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewComment   *string    `gorm:"type:text" json:"review_comment"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (TeamMemberRequest) TableName() string {
	return TeamMemberRequestTableName
}
