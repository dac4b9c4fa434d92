package progress

import (
	"github.com/samber/lo"

	"pcs-crm/internal/model"
)

// MyTaskView 当前用户视角的任务
type MyTaskView struct {
	model.Task
	MyStatus string `json:"my_status"`
}

// MyTasks 过滤出用户参与的任务，并带上该用户自己的状态
func MyTasks(tasks []model.Task, userID int64) []MyTaskView {
	return lo.FilterMap(tasks, func(t model.Task, _ int) (MyTaskView, bool) {
		a, ok := lo.Find(t.Assignees, func(a model.TaskAssignee) bool {
			return a.UserID == userID
		})
		if !ok {
			return MyTaskView{}, false
		}
		return MyTaskView{Task: t, MyStatus: a.Status}, true
	})
}
