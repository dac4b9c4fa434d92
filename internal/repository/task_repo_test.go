package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

func newTask(creator int64, assignees ...model.TaskAssignee) *model.Task {
	return &model.Task{
		Title:     "CRM 上线",
		Deadline:  time.Now().Add(48 * time.Hour),
		CreatedBy: creator,
		Assignees: assignees,
	}
}

func TestTaskRepository_CreateDerivesStatus(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewTaskRepository(db)

	empty := newTask(users[0])
	require.NoError(t, repo.Create(empty))

	staffed := newTask(users[0],
		model.TaskAssignee{UserID: users[0], Status: constants.AssigneeStatusCompleted},
		model.TaskAssignee{UserID: users[1], Status: constants.AssigneeStatusNotStarted},
	)
	require.NoError(t, repo.Create(staffed))

	got, err := repo.FindByID(empty.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OverallStatusUnassigned, got.OverallStatus)
	assert.Empty(t, got.Assignees)

	got, err = repo.FindByID(staffed.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OverallStatusInProgress, got.OverallStatus)
	assert.Len(t, got.Assignees, 2)
}

func TestTaskRepository_MutateAssigneesPersistsStatus(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewTaskRepository(db)

	task := newTask(users[0])
	require.NoError(t, repo.Create(task))

	assigned, err := repo.MutateAssignees(task.ID, addMembers(users...))
	require.NoError(t, err)
	assert.Equal(t, constants.OverallStatusNotStarted, assigned.OverallStatus)
	require.Len(t, assigned.Assignees, 2)
	assert.NotNil(t, assigned.Assignees[0].User, "返回值预加载成员信息")

	// 重复指派不产生新记录
	_, err = repo.MutateAssignees(task.ID, addMembers(users[0]))
	require.NoError(t, err)

	_, err = repo.MutateAssignees(task.ID, setStatus(users[0], constants.AssigneeStatusInProgress))
	require.NoError(t, err)

	var stored model.Task
	require.NoError(t, db.Preload("Assignees").First(&stored, task.ID).Error)
	assert.Equal(t, constants.OverallStatusInProgress, stored.OverallStatus)
	require.Len(t, stored.Assignees, 2)
	byUser := map[int64]string{}
	for _, a := range stored.Assignees {
		byUser[a.UserID] = a.Status
	}
	assert.Equal(t, constants.AssigneeStatusInProgress, byUser[users[0]])
	assert.Equal(t, constants.AssigneeStatusNotStarted, byUser[users[1]])
}

func TestTaskRepository_MutateAssigneesRollsBack(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, db, 1)
	repo := NewTaskRepository(db)

	task := newTask(users[0])
	require.NoError(t, repo.Create(task))

	failing := func(task *model.Task) ([]model.TaskAssignee, error) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "拒绝")
	}
	_, err := repo.MutateAssignees(task.ID, failing)
	assert.Equal(t, pkgErrors.CodeBadRequest, pkgErrors.CodeOf(err))

	_, err = repo.MutateAssignees(404, addMembers(users[0]))
	assert.ErrorIs(t, err, pkgErrors.ErrTaskNotFound)

	got, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Assignees)
	assert.Equal(t, constants.OverallStatusUnassigned, got.OverallStatus)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, db, 1)
	repo := NewTaskRepository(db)

	task := newTask(users[0], model.TaskAssignee{UserID: users[0], Status: constants.AssigneeStatusNotStarted})
	require.NoError(t, repo.Create(task))

	require.NoError(t, repo.Delete(task.ID))
	assert.ErrorIs(t, repo.Delete(task.ID), pkgErrors.ErrTaskNotFound)

	var left int64
	require.NoError(t, db.Model(&model.TaskAssignee{}).Where("task_id = ?", task.ID).Count(&left).Error)
	assert.Zero(t, left)
}

func TestTaskRepository_ListByAssignee(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewTaskRepository(db)

	mine := newTask(users[0], model.TaskAssignee{UserID: users[1], Status: constants.AssigneeStatusNotStarted})
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(newTask(users[0])))

	tasks, err := repo.ListByAssignee(users[1])
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, mine.ID, tasks[0].ID)
}
