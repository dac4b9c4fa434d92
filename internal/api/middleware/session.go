package middleware

import (
	"github.com/gin-gonic/gin"

	"pcs-crm/internal/service"
	"pcs-crm/pkg/utils"
)

// SessionMiddleware 空闲超时检查，并刷新最后活跃时间，需放在 AuthMiddleware 之后
func SessionMiddleware(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := userService.TouchSession(CurrentUserID(c)); err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
