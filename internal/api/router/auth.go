package router

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/pkg/auth"
)

// RoleAuthWrapper 由 handler 自行决定何时需要校验权限
func RoleAuthWrapper(handler func(c *gin.Context, canAccess func(role string) bool), permission auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		handler(c, func(role string) bool {
			return auth.Allow([]string{role}, permission)
		})
	}
}
