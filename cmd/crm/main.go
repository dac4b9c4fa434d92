package main

import (
	_ "pcs-crm/docs" // Swagger docs
)

// @title PCS CRM API
// @version 1.0
// @description 内部 CRM 平台 API 文档
// @description 提供项目任务、成员分配、考勤、成员申请等功能

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:5080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	Execute()
}
