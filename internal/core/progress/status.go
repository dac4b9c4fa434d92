// Package progress 任务进度、考勤工时与项目统计的纯计算，不访问存储
package progress

import (
	"github.com/samber/lo"

	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
)

// DeriveOverallStatus 按成员状态推导任务整体状态，规则按顺序匹配:
//  1. 无成员 -> unassigned
//  2. 全部 completed -> completed
//  3. 全部 not started -> not started
//  4. 任一 in progress -> in progress
//  5. 其余(completed 与 not started 混合) -> not started
func DeriveOverallStatus(assignees []model.TaskAssignee) string {
	if len(assignees) == 0 {
		return constants.OverallStatusUnassigned
	}

	statusOf := func(a model.TaskAssignee, _ int) string { return a.Status }
	statuses := lo.Map(assignees, statusOf)

	switch {
	case lo.EveryBy(statuses, isStatus(constants.AssigneeStatusCompleted)):
		return constants.OverallStatusCompleted
	case lo.EveryBy(statuses, isStatus(constants.AssigneeStatusNotStarted)):
		return constants.OverallStatusNotStarted
	case lo.SomeBy(statuses, isStatus(constants.AssigneeStatusInProgress)):
		return constants.OverallStatusInProgress
	default:
		return constants.OverallStatusNotStarted
	}
}

func isStatus(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

// MergeAssignees 集合并: 已存在的成员保持原状态，新成员以 not started 加入
// 返回合并后的列表和本次新增的成员
func MergeAssignees(taskID int64, existing []model.TaskAssignee, userIDs []int64) (merged, added []model.TaskAssignee) {
	present := lo.SliceToMap(existing, func(a model.TaskAssignee) (int64, struct{}) {
		return a.UserID, struct{}{}
	})

	merged = append(merged, existing...)
	for _, id := range lo.Uniq(userIDs) {
		if _, ok := present[id]; ok {
			continue
		}
		a := model.TaskAssignee{TaskID: taskID, UserID: id, Status: constants.AssigneeStatusNotStarted}
		merged = append(merged, a)
		added = append(added, a)
	}
	return merged, added
}

// SetAssigneeStatus 修改单个成员状态，成员不存在时返回 false
func SetAssigneeStatus(assignees []model.TaskAssignee, userID int64, status string) bool {
	_, idx, ok := lo.FindIndexOf(assignees, func(a model.TaskAssignee) bool {
		return a.UserID == userID
	})
	if !ok {
		return false
	}
	assignees[idx].Status = status
	return true
}
