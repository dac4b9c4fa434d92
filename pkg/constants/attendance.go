package constants

// WorkStatus 考勤展示状态（读时计算，不落库）
const (
	WorkStatusOffline   = "offline"
	WorkStatusActive    = "active"
	WorkStatusBreak     = "break" // 往日签到但未签退
	WorkStatusLoggedOut = "logged_out"
)
