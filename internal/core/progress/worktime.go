package progress

import (
	"time"

	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
)

// WorkSummary 某天的工时展示
type WorkSummary struct {
	Date           string     `json:"date"`
	Status         string     `json:"status"`
	LoginTime      *time.Time `json:"login_time"`
	LogoutTime     *time.Time `json:"logout_time"`
	WorkingSeconds int64      `json:"working_seconds"`
}

// WorkingTime 计算 day(YYYY-MM-DD) 的工时，today 为当前日历日
//   - 无记录: offline, 0
//   - 当天未签退: active, now - checkIn
//   - 已签退: logged_out, checkOut - checkIn
//   - 往日未签退: break, 0
//
// 时钟回拨导致的负数一律按 0 处理
func WorkingTime(record *model.Attendance, day, today string, now time.Time) WorkSummary {
	summary := WorkSummary{Date: day, Status: constants.WorkStatusOffline}
	if record == nil {
		return summary
	}

	checkIn := record.CheckIn
	summary.LoginTime = &checkIn

	switch {
	case record.CheckOut != nil:
		checkOut := *record.CheckOut
		summary.LogoutTime = &checkOut
		summary.Status = constants.WorkStatusLoggedOut
		summary.WorkingSeconds = clampSeconds(checkOut.Sub(checkIn))
	case day == today:
		summary.Status = constants.WorkStatusActive
		summary.WorkingSeconds = clampSeconds(now.Sub(checkIn))
	default:
		summary.Status = constants.WorkStatusBreak
	}
	return summary
}

func clampSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
