package model

import "time"

const AttendanceTableName = "attendances"

// Attendance 一次签到/签退记录，每人每天一条
type Attendance struct {
	BaseModel
	UserID   int64      `gorm:"not null;uniqueIndex:idx_attendance_user_day" json:"user_id"`
	WorkDate string     `gorm:"size:10;not null;uniqueIndex:idx_attendance_user_day;index" json:"work_date"` // YYYY-MM-DD
	CheckIn  time.Time  `gorm:"not null" json:"check_in"`
	CheckOut *time.Time `json:"check_out"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Attendance) TableName() string {
	return AttendanceTableName
}

// IsOpen 是否尚未签退
func (a *Attendance) IsOpen() bool {
	return a.CheckOut == nil
}
