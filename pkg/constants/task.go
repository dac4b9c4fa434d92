package constants

import "github.com/samber/lo"

// OverallStatus 任务整体状态，由成员状态推导，不允许直接写入
const (
	OverallStatusUnassigned = "unassigned"
	OverallStatusNotStarted = "not started"
	OverallStatusInProgress = "in progress"
	OverallStatusCompleted  = "completed"
)

// AssigneeStatus 单个成员在任务上的进度
const (
	AssigneeStatusNotStarted = "not started"
	AssigneeStatusInProgress = "in progress"
	AssigneeStatusCompleted  = "completed"
)

// DeadlineUrgency 截止日期紧迫程度
const (
	UrgencyOverdue = "overdue"
	UrgencyUrgent  = "urgent"
	UrgencySoon    = "soon"
	UrgencyNormal  = "normal"
)

var OverallStatuses = []string{
	OverallStatusUnassigned,
	OverallStatusNotStarted,
	OverallStatusInProgress,
	OverallStatusCompleted,
}

var AssigneeStatuses = []string{
	AssigneeStatusNotStarted,
	AssigneeStatusInProgress,
	AssigneeStatusCompleted,
}

func IsOverallStatus(s string) bool {
	return lo.Contains(OverallStatuses, s)
}

func IsAssigneeStatus(s string) bool {
	return lo.Contains(AssigneeStatuses, s)
}
