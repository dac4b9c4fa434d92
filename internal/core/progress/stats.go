package progress

import (
	"math"
	"time"

	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
)

const day = 24 * time.Hour

// ProjectStats 项目详情统计
type ProjectStats struct {
	TotalAssignees       int    `json:"total_assignees"`
	NotStartedCount      int    `json:"not_started_count"`
	InProgressCount      int    `json:"in_progress_count"`
	CompletedCount       int    `json:"completed_count"`
	CompletionPercentage int    `json:"completion_percentage"`
	IsOverdue            bool   `json:"is_overdue"`
	DaysUntilDeadline    int    `json:"days_until_deadline"`
	Urgency              string `json:"urgency"`
}

// ComputeProjectStats 计算任务统计
func ComputeProjectStats(task *model.Task, now time.Time) ProjectStats {
	stats := ProjectStats{TotalAssignees: len(task.Assignees)}

	for _, a := range task.Assignees {
		switch a.Status {
		case constants.AssigneeStatusNotStarted:
			stats.NotStartedCount++
		case constants.AssigneeStatusInProgress:
			stats.InProgressCount++
		case constants.AssigneeStatusCompleted:
			stats.CompletedCount++
		}
	}

	if stats.TotalAssignees > 0 {
		stats.CompletionPercentage = int(math.Round(100 * float64(stats.CompletedCount) / float64(stats.TotalAssignees)))
	}

	stats.IsOverdue = now.After(task.Deadline) && task.OverallStatus != constants.OverallStatusCompleted
	stats.DaysUntilDeadline = int(math.Ceil(float64(task.Deadline.Sub(now)) / float64(day)))
	stats.Urgency = urgency(stats.IsOverdue, stats.DaysUntilDeadline)

	return stats
}

func urgency(overdue bool, days int) string {
	switch {
	case overdue:
		return constants.UrgencyOverdue
	case days <= 3:
		return constants.UrgencyUrgent
	case days <= 7:
		return constants.UrgencySoon
	default:
		return constants.UrgencyNormal
	}
}
