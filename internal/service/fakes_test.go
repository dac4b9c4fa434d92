package service

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/model"
	"pcs-crm/internal/repository"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

// ============= users =============

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User
	seq   int64
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*model.User)}
	for _, u := range users {
		_ = r.Create(u)
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.EmployeeID == user.EmployeeID || u.Phone == user.Phone {
			return pkgErrors.ErrUserExists
		}
	}
	if user.ID == 0 {
		r.seq++
		user.ID = r.seq
	} else if user.ID > r.seq {
		r.seq = user.ID
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, pkgErrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pkgErrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByIDs(ids []int64) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsUnique(email, employeeID, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email || u.EmployeeID == employeeID || u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) sorted() []*model.User {
	users := lo.Values(r.users)
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return lo.Map(users, func(u *model.User, _ int) *model.User { cp := *u; return &cp })
}

func (r *fakeUserRepo) List(page, pageSize int, keyword, role string) ([]*model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filtered := lo.Filter(r.sorted(), func(u *model.User, _ int) bool {
		if role != "" && u.Role != role {
			return false
		}
		return keyword == "" || strings.Contains(u.FullName()+u.Email+u.EmployeeID, keyword)
	})
	start := lo.Clamp((page-1)*pageSize, 0, len(filtered))
	end := lo.Clamp(start+pageSize, 0, len(filtered))
	return filtered[start:end], int64(len(filtered)), nil
}

func (r *fakeUserRepo) ListAll() ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pkgErrors.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastActive(id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return pkgErrors.ErrUserNotFound
	}
	u.LastActive = &at
	return nil
}

// ============= tasks =============

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[int64]*model.Task
	seq   int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*model.Task)}
}

func cloneTask(t *model.Task) *model.Task {
	cp := *t
	cp.Assignees = append([]model.TaskAssignee(nil), t.Assignees...)
	return &cp
}

func (r *fakeTaskRepo) Create(task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	task.ID = r.seq
	for i := range task.Assignees {
		task.Assignees[i].TaskID = task.ID
	}
	task.OverallStatus = progress.DeriveOverallStatus(task.Assignees)
	r.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *fakeTaskRepo) FindByID(id int64, _ ...repository.QueryOption) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, pkgErrors.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *fakeTaskRepo) all() []*model.Task {
	tasks := lo.Values(r.tasks)
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return lo.Map(tasks, func(t *model.Task, _ int) *model.Task { return cloneTask(t) })
}

func (r *fakeTaskRepo) List(page, pageSize int, keyword, overallStatus string) ([]*model.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filtered := lo.Filter(r.all(), func(t *model.Task, _ int) bool {
		if overallStatus != "" && t.OverallStatus != overallStatus {
			return false
		}
		return keyword == "" || strings.Contains(t.Title+t.Description, keyword)
	})
	start := lo.Clamp((page-1)*pageSize, 0, len(filtered))
	end := lo.Clamp(start+pageSize, 0, len(filtered))
	return filtered[start:end], int64(len(filtered)), nil
}

func (r *fakeTaskRepo) ListByAssignee(userID int64) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Task
	for _, t := range r.all() {
		if lo.Contains(t.AssigneeIDs(), userID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListOverdue(now time.Time) ([]*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Filter(r.all(), func(t *model.Task, _ int) bool {
		return t.Deadline.Before(now) && t.OverallStatus != constants.OverallStatusCompleted
	}), nil
}

func (r *fakeTaskRepo) UpdateFields(id int64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return pkgErrors.ErrTaskNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			t.Title = v.(string)
		case "description":
			t.Description = v.(string)
		case "deadline":
			t.Deadline = v.(time.Time)
		}
	}
	return nil
}

func (r *fakeTaskRepo) setRequestFlag(id int64, flag bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		t.RequestTeamMember = flag
	}
}

func (r *fakeTaskRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return pkgErrors.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// MutateAssignees 互斥锁模拟行锁，fn 出错时不落库
func (r *fakeTaskRepo) MutateAssignees(id int64, fn repository.AssigneeMutator) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[id]
	if !ok {
		return nil, pkgErrors.ErrTaskNotFound
	}

	work := cloneTask(stored)
	if _, err := fn(work); err != nil {
		return nil, err
	}
	work.OverallStatus = progress.DeriveOverallStatus(work.Assignees)
	r.tasks[id] = work
	return cloneTask(work), nil
}

// ============= attendance =============

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []*model.Attendance
	seq     int64
}

func (r *fakeAttendanceRepo) Create(record *model.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.UserID == record.UserID && a.WorkDate == record.WorkDate {
			return pkgErrors.ErrRecordExists
		}
	}
	r.seq++
	record.ID = r.seq
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeAttendanceRepo) FindByUserAndDate(userID int64, date string) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.UserID == userID && a.WorkDate == date {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pkgErrors.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) Close(id int64, checkOut time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.ID == id && a.CheckOut == nil {
			a.CheckOut = &checkOut
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) ListByRange(from, to string) ([]*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Filter(r.records, func(a *model.Attendance, _ int) bool {
		return a.WorkDate >= from && a.WorkDate <= to
	}), nil
}

// ============= team member requests =============

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[int64]*model.TeamMemberRequest
	seq      int64
	taskRepo *fakeTaskRepo
}

func newFakeRequestRepo(taskRepo *fakeTaskRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*model.TeamMemberRequest), taskRepo: taskRepo}
}

func (r *fakeRequestRepo) Create(req *model.TeamMemberRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	req.ID = r.seq
	cp := *req
	r.requests[req.ID] = &cp
	if req.ProjectID != nil {
		r.taskRepo.setRequestFlag(*req.ProjectID, true)
	}
	return nil
}

func (r *fakeRequestRepo) FindByID(id int64) (*model.TeamMemberRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, pkgErrors.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) List(page, pageSize int, status string) ([]*model.TeamMemberRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := lo.Values(r.requests)
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	filtered := lo.Filter(all, func(req *model.TeamMemberRequest, _ int) bool {
		return status == "" || req.Status == status
	})
	start := lo.Clamp((page-1)*pageSize, 0, len(filtered))
	end := lo.Clamp(start+pageSize, 0, len(filtered))
	return filtered[start:end], int64(len(filtered)), nil
}

func (r *fakeRequestRepo) Review(id int64, decision repository.ReviewDecision) (*model.TeamMemberRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, pkgErrors.ErrRequestNotFound
	}
	if req.Status != constants.RequestStatusPending {
		return nil, pkgErrors.ErrRequestAlreadyReviewed
	}
	if decision.Status == constants.RequestStatusApproved && req.ProjectID != nil && decision.OnApprove != nil {
		_, err := r.taskRepo.MutateAssignees(*req.ProjectID, decision.OnApprove)
		if err != nil && !errors.Is(err, pkgErrors.ErrTaskNotFound) {
			return nil, err
		}
	}
	req.Status = decision.Status
	req.ReviewedBy = &decision.ReviewerID
	req.ReviewedAt = &decision.ReviewedAt
	req.ReviewComment = decision.Comment
	if req.ProjectID != nil {
		pending := lo.ContainsBy(lo.Values(r.requests), func(other *model.TeamMemberRequest) bool {
			return other.ProjectID != nil && *other.ProjectID == *req.ProjectID &&
				other.Status == constants.RequestStatusPending
		})
		r.taskRepo.setRequestFlag(*req.ProjectID, pending)
	}
	cp := *req
	return &cp, nil
}

// ============= helpers =============

func seedUser(id int64, role string) *model.User {
	return &model.User{
		BaseModelWithSoftDelete: model.BaseModelWithSoftDelete{BaseModel: model.BaseModel{ID: id}},
		EmployeeID:              "E" + lo.RandomString(6, lo.NumbersCharset),
		FirstName:               "User",
		LastName:                string(rune('A' + id)),
		Email:                   "user" + lo.RandomString(8, lo.LowerCaseLettersCharset) + "@pcs.test",
		Phone:                   lo.RandomString(10, lo.NumbersCharset),
		Role:                    role,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
