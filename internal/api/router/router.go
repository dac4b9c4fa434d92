package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"pcs-crm/internal/api/handler"
	"pcs-crm/internal/api/middleware"
	"pcs-crm/internal/pkg/auth"
	"pcs-crm/internal/pkg/config"
	"pcs-crm/internal/repository"
	"pcs-crm/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Attendance.Location()
	if err != nil {
		return nil, err
	}

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	requestRepo := repository.NewTeamMemberRequestRepository(db)

	// 初始化Service
	ldapService := service.NewLDAPService(&cfg.Auth.LDAP)
	services := &Services{
		Auth:       service.NewAuthService(&cfg.Auth, userRepo, ldapService),
		User:       service.NewUserService(userRepo, cfg.Auth.SessionIdle()),
		Task:       service.NewTaskService(taskRepo, userRepo),
		Attendance: service.NewAttendanceService(attendanceRepo, userRepo, loc),
		Request:    service.NewTeamMemberRequestService(requestRepo, taskRepo, userRepo),
	}

	return NewEngine(cfg, services), nil
}

// Services 路由依赖的业务服务
type Services struct {
	Auth       service.AuthService
	User       service.UserService
	Task       service.TaskService
	Attendance service.AttendanceService
	Request    service.TeamMemberRequestService
}

// NewEngine 注册中间件和路由
func NewEngine(cfg *config.Config, services *Services) *gin.Engine {
	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Handler
	authHandler := handler.NewAuthHandler(services.Auth)
	userHandler := handler.NewUserHandler(services.User)
	taskHandler := handler.NewTaskHandler(services.Task)
	attendanceHandler := handler.NewAttendanceHandler(services.Attendance)
	requestHandler := handler.NewTeamMemberRequestHandler(services.Request)

	v1 := r.Group("/api/v1")

	// 认证路由(无需认证)
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// 需要认证的路由
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(), middleware.SessionMiddleware(services.User))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.GetMe)
		authed.GET("/auth/verify", authHandler.Verify)

		// 用户
		authed.GET("/users", userHandler.List)
		authed.GET("/users/employees", userHandler.ListEmployees)

		// 个人档案
		authed.GET("/profile", userHandler.GetProfile)
		authed.PUT("/profile/avatar", userHandler.UpdateAvatar)
		authed.POST("/profile/skills", userHandler.AddSkill)
		authed.DELETE("/profile/skills", userHandler.RemoveSkill)

		// 任务
		authed.POST("/task", middleware.RequirePermission(auth.PermTaskCreate), taskHandler.Create)
		authed.GET("/tasks", taskHandler.List)
		authed.GET("/tasks/mine", taskHandler.Mine)
		authed.PUT("/task/assign", middleware.RequirePermission(auth.PermTaskAssign), taskHandler.Assign)
		authed.PUT("/task/assignee/status", RoleAuthWrapper(taskHandler.UpdateAssigneeStatus, auth.PermTaskUpdate))
		authed.GET("/task/:id", taskHandler.GetByID)
		authed.GET("/task/:id/detail", taskHandler.GetDetail)
		authed.PUT("/task/:id", middleware.RequirePermission(auth.PermTaskUpdate), taskHandler.Update)
		authed.DELETE("/task/:id", middleware.RequirePermission(auth.PermTaskDelete), taskHandler.Delete)

		// 考勤
		authed.POST("/attendance/checkin", attendanceHandler.CheckIn)
		authed.POST("/attendance/checkout", attendanceHandler.CheckOut)
		authed.GET("/attendance/check-in-status", attendanceHandler.CheckInStatus)
		authed.GET("/attendance/check-out-status", attendanceHandler.CheckOutStatus)
		authed.GET("/attendance/working-time", attendanceHandler.WorkingTime)
		authed.GET("/attendance/employees", middleware.RequirePermission(auth.PermAttendanceView), attendanceHandler.EmployeeSheet)

		// 成员申请
		authed.POST("/team-member-request", requestHandler.Create)
		authed.GET("/team-member-requests", requestHandler.List)
		authed.GET("/team-member-request/:id", requestHandler.GetByID)
		authed.PUT("/team-member-request/:id/status", middleware.RequirePermission(auth.PermRequestReview), requestHandler.UpdateStatus)
	}

	return r
}
