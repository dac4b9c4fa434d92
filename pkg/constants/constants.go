package constants

// 认证类型
const (
	AuthTypeLDAP  = "ldap"
	AuthTypeLocal = "local"
)

// 用户角色
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// JWT 相关
const (
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// gin.Context 中的键
const (
	CtxKeyUser      = "user"
	CtxKeyUserID    = "user_id"
	CtxKeyRole      = "role"
	CtxKeyRequestID = "request_id"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
	HeaderRequestID     = "X-Request-ID"
)

// DateLayout 考勤日期键格式
const DateLayout = "2006-01-02"
