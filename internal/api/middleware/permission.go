package middleware

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/pkg/auth"
	"pcs-crm/pkg/errors"
	"pcs-crm/pkg/utils"
)

// RequirePermission 按角色校验权限
func RequirePermission(permission auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Allow([]string{CurrentRole(c)}, permission) {
			utils.Error(c, errors.ErrPermissionDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}
