package dto

import "pcs-crm/internal/core/progress"

// WorkingTimeQuery 工时查询
type WorkingTimeQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"` // 不传默认今天
}

// AttendanceRangeQuery 员工考勤表查询
type AttendanceRangeQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// CheckInStatusResponse 今日签到状态
type CheckInStatusResponse struct {
	CheckedIn bool `json:"checked_in"`
}

// CheckOutStatusResponse 今日签退状态
type CheckOutStatusResponse struct {
	CheckedOut bool `json:"checked_out"`
}

// EmployeeAttendance 员工及其每日考勤
type EmployeeAttendance struct {
	UserID      int64                           `json:"user_id"`
	EmployeeID  string                          `json:"employee_id"`
	Name        string                          `json:"name"`
	Email       string                          `json:"email"`
	Designation string                          `json:"designation"`
	Dates       map[string]progress.WorkSummary `json:"dates"`
}
