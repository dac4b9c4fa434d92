package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pcs-crm/internal/model"
	"pcs-crm/pkg/constants"
)

func TestWorkingTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	checkIn := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 5, 10, 17, 30, 0, 0, time.UTC)
	skewed := checkIn.Add(-time.Hour)

	tests := []struct {
		name    string
		record  *model.Attendance
		day     string
		status  string
		seconds int64
	}{
		{"无记录", nil, "2024-05-10", constants.WorkStatusOffline, 0},
		{"当天在岗", &model.Attendance{CheckIn: checkIn}, "2024-05-10", constants.WorkStatusActive, 6 * 3600},
		{"已签退", &model.Attendance{CheckIn: checkIn, CheckOut: &checkOut}, "2024-05-10", constants.WorkStatusLoggedOut, 8*3600 + 1800},
		{"签退早于签到", &model.Attendance{CheckIn: checkIn, CheckOut: &skewed}, "2024-05-10", constants.WorkStatusLoggedOut, 0},
		{"签到晚于当前时间", &model.Attendance{CheckIn: now.Add(time.Minute)}, "2024-05-10", constants.WorkStatusActive, 0},
		{"往日未签退", &model.Attendance{CheckIn: checkIn.AddDate(0, 0, -1)}, "2024-05-09", constants.WorkStatusBreak, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkingTime(tt.record, tt.day, "2024-05-10", now)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.seconds, got.WorkingSeconds)
			assert.GreaterOrEqual(t, got.WorkingSeconds, int64(0))
			assert.Equal(t, tt.day, got.Date)
		})
	}
}
