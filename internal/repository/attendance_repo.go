package repository

import (
	"time"

	"gorm.io/gorm"

	"pcs-crm/internal/model"
	pkgErrors "pcs-crm/pkg/errors"
)

type AttendanceRepository interface {
	Create(record *model.Attendance) error
	FindByUserAndDate(userID int64, date string) (*model.Attendance, error)
	Close(id int64, checkOut time.Time) (bool, error)
	ListByRange(from, to string) ([]*model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create 唯一索引 (user_id, work_date) 冲突时返回 ErrRecordExists
func (r *attendanceRepository) Create(record *model.Attendance) error {
	if err := r.db.Create(record).Error; err != nil {
		return translate(err, pkgErrors.ErrRecordNotFound, "创建考勤记录失败")
	}
	return nil
}

func (r *attendanceRepository) FindByUserAndDate(userID int64, date string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.Where("user_id = ? AND work_date = ?", userID, date).First(&record).Error
	if err != nil {
		return nil, translate(err, pkgErrors.ErrRecordNotFound, "查询考勤记录失败")
	}
	return &record, nil
}

// Close 仅在未签退时写入签退时间，返回是否更新成功
func (r *attendanceRepository) Close(id int64, checkOut time.Time) (bool, error) {
	result := r.db.Model(&model.Attendance{}).
		Where("id = ? AND check_out IS NULL", id).
		Update("check_out", checkOut)
	if result.Error != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新考勤记录失败", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *attendanceRepository) ListByRange(from, to string) ([]*model.Attendance, error) {
	var records []*model.Attendance
	err := r.db.Where("work_date >= ? AND work_date <= ?", from, to).
		Order("work_date ASC, user_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询考勤记录失败", err)
	}
	return records, nil
}
