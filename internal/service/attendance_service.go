package service

import (
	"errors"
	"time"

	"github.com/samber/lo"

	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/repository"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

const (
	defaultSheetDays = 7
	maxSheetDays     = 62
)

type AttendanceService interface {
	CheckIn(userID int64) (*model.Attendance, error)
	CheckOut(userID int64) (*model.Attendance, error)
	CheckInStatus(userID int64) (*dto.CheckInStatusResponse, error)
	CheckOutStatus(userID int64) (*dto.CheckOutStatusResponse, error)
	WorkingTime(userID int64, date string) (*progress.WorkSummary, error)
	EmployeeSheet(from, to string) ([]*dto.EmployeeAttendance, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
) AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *attendanceService) today() string {
	return s.now().In(s.loc).Format(constants.DateLayout)
}

// findToday 今天没有记录时返回 nil, nil
func (s *attendanceService) findToday(userID int64) (*model.Attendance, error) {
	record, err := s.attendanceRepo.FindByUserAndDate(userID, s.today())
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// CheckIn 每人每天只能签到一次，签退后也不能再次签到
func (s *attendanceService) CheckIn(userID int64) (*model.Attendance, error) {
	existing, err := s.findToday(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgErrors.ErrAlreadyCheckedIn
	}

	record := &model.Attendance{
		UserID:   userID,
		WorkDate: s.today(),
		CheckIn:  s.now(),
	}
	if err := s.attendanceRepo.Create(record); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordExists) {
			return nil, pkgErrors.ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) CheckOut(userID int64) (*model.Attendance, error) {
	record, err := s.findToday(userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, pkgErrors.ErrNotCheckedIn
	}
	if !record.IsOpen() {
		return nil, pkgErrors.ErrAlreadyCheckedOut
	}

	now := s.now()
	closed, err := s.attendanceRepo.Close(record.ID, now)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, pkgErrors.ErrAlreadyCheckedOut
	}
	record.CheckOut = &now
	return record, nil
}

func (s *attendanceService) CheckInStatus(userID int64) (*dto.CheckInStatusResponse, error) {
	record, err := s.findToday(userID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckInStatusResponse{CheckedIn: record != nil && record.IsOpen()}, nil
}

func (s *attendanceService) CheckOutStatus(userID int64) (*dto.CheckOutStatusResponse, error) {
	record, err := s.findToday(userID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckOutStatusResponse{CheckedOut: record != nil && !record.IsOpen()}, nil
}

// WorkingTime date 为空时取今天
func (s *attendanceService) WorkingTime(userID int64, date string) (*progress.WorkSummary, error) {
	today := s.today()
	if date == "" {
		date = today
	}

	record, err := s.attendanceRepo.FindByUserAndDate(userID, date)
	if err != nil {
		if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, err
		}
		record = nil
	}

	summary := progress.WorkingTime(record, date, today, s.now())
	return &summary, nil
}

// EmployeeSheet 所有员工在日期区间内每天的考勤
func (s *attendanceService) EmployeeSheet(from, to string) ([]*dto.EmployeeAttendance, error) {
	days, err := s.sheetDays(from, to)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListByRange(days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	type key struct {
		userID int64
		date   string
	}
	byKey := lo.KeyBy(records, func(r *model.Attendance) key {
		return key{userID: r.UserID, date: r.WorkDate}
	})

	today, now := s.today(), s.now()
	sheet := make([]*dto.EmployeeAttendance, 0, len(users))
	for _, u := range users {
		row := &dto.EmployeeAttendance{
			UserID:      u.ID,
			EmployeeID:  u.EmployeeID,
			Name:        u.FullName(),
			Email:       u.Email,
			Designation: u.Designation,
			Dates:       make(map[string]progress.WorkSummary, len(days)),
		}
		for _, d := range days {
			row.Dates[d] = progress.WorkingTime(byKey[key{userID: u.ID, date: d}], d, today, now)
		}
		sheet = append(sheet, row)
	}
	return sheet, nil
}

// sheetDays 解析日期区间，默认最近7天
func (s *attendanceService) sheetDays(from, to string) ([]string, error) {
	end := s.now().In(s.loc)
	if to != "" {
		t, err := time.ParseInLocation(constants.DateLayout, to, s.loc)
		if err != nil {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "无效的结束日期: "+to)
		}
		end = t
	}

	start := end.AddDate(0, 0, -(defaultSheetDays - 1))
	if from != "" {
		t, err := time.ParseInLocation(constants.DateLayout, from, s.loc)
		if err != nil {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "无效的开始日期: "+from)
		}
		start = t
	}

	startDay := start.Format(constants.DateLayout)
	endDay := end.Format(constants.DateLayout)
	if startDay > endDay {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "开始日期不能晚于结束日期")
	}

	days := make([]string, 0, defaultSheetDays)
	for d := start; d.Format(constants.DateLayout) <= endDay; d = d.AddDate(0, 0, 1) {
		if len(days) == maxSheetDays {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "日期区间不能超过62天")
		}
		days = append(days, d.Format(constants.DateLayout))
	}
	return days, nil
}
