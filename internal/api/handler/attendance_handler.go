package handler

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/api/middleware"
	"pcs-crm/internal/dto"
	"pcs-crm/internal/service"
	"pcs-crm/pkg/utils"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CheckIn 签到
// @Summary 签到
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=model.Attendance}
// @Router /api/v1/attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	record, err := h.attendanceService.CheckIn(middleware.CurrentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, record)
}

// CheckOut 签退
// @Summary 签退
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=model.Attendance}
// @Router /api/v1/attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	record, err := h.attendanceService.CheckOut(middleware.CurrentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, record)
}

// CheckInStatus 今日是否已签到
// @Summary 签到状态
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.CheckInStatusResponse}
// @Router /api/v1/attendance/check-in-status [get]
func (h *AttendanceHandler) CheckInStatus(c *gin.Context) {
	status, err := h.attendanceService.CheckInStatus(middleware.CurrentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, status)
}

// CheckOutStatus 今日是否已签退
// @Summary 签退状态
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.CheckOutStatusResponse}
// @Router /api/v1/attendance/check-out-status [get]
func (h *AttendanceHandler) CheckOutStatus(c *gin.Context) {
	status, err := h.attendanceService.CheckOutStatus(middleware.CurrentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, status)
}

// WorkingTime 工时
// @Summary 指定日期的工作状态和时长
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "日期 2006-01-02，默认今天"
// @Success 200 {object} utils.Response{data=progress.WorkSummary}
// @Router /api/v1/attendance/working-time [get]
func (h *AttendanceHandler) WorkingTime(c *gin.Context) {
	var query dto.WorkingTimeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BindError(c, err)
		return
	}

	summary, err := h.attendanceService.WorkingTime(middleware.CurrentUserID(c), query.Date)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, summary)
}

// EmployeeSheet 员工考勤表
// @Summary 所有员工在日期范围内的考勤
// @Tags 考勤
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "开始日期，默认最近7天"
// @Param to query string false "结束日期，默认今天"
// @Success 200 {object} utils.Response{data=[]dto.EmployeeAttendance}
// @Router /api/v1/attendance/employees [get]
func (h *AttendanceHandler) EmployeeSheet(c *gin.Context) {
	var query dto.AttendanceRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BindError(c, err)
		return
	}

	sheet, err := h.attendanceService.EmployeeSheet(query.From, query.To)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, sheet)
}
