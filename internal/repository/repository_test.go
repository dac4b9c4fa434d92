package repository

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/model"
	"pcs-crm/internal/pkg/database"
)

// newTestDB 每个用例一个独立的 sqlite 文件库，和线上一样开启错误翻译
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "crm.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		u := &model.User{
			EmployeeID: fmt.Sprintf("E%03d", i),
			FirstName:  "User",
			LastName:   fmt.Sprint(i),
			Email:      fmt.Sprintf("user%d@pcs.test", i),
			Phone:      fmt.Sprintf("1380000%04d", i),
		}
		require.NoError(t, db.Create(u).Error)
		ids = append(ids, u.ID)
	}
	return ids
}

func addMembers(userIDs ...int64) AssigneeMutator {
	return func(task *model.Task) ([]model.TaskAssignee, error) {
		merged, added := progress.MergeAssignees(task.ID, task.Assignees, userIDs)
		task.Assignees = merged
		return added, nil
	}
}

func setStatus(userID int64, status string) AssigneeMutator {
	return func(task *model.Task) ([]model.TaskAssignee, error) {
		if !progress.SetAssigneeStatus(task.Assignees, userID, status) {
			return nil, nil
		}
		for _, a := range task.Assignees {
			if a.UserID == userID {
				return []model.TaskAssignee{a}, nil
			}
		}
		return nil, nil
	}
}
