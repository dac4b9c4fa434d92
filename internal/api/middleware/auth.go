package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pcs-crm/internal/dto"
	"pcs-crm/internal/pkg/jwt"
	"pcs-crm/pkg/constants"
	"pcs-crm/pkg/errors"
	"pcs-crm/pkg/utils"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorWithCode(c, errors.CodeUnauthorized, "缺少Authorization Header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			utils.ErrorWithCode(c, errors.CodeUnauthorized, "Authorization格式错误")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		// 必须是AccessToken
		if claims.Type != constants.JWTTypeAccess {
			utils.ErrorWithCode(c, errors.CodeUnauthorized, "无效的Token类型")
			c.Abort()
			return
		}

		c.Set(constants.CtxKeyUser, &dto.UserInfo{
			ID:       claims.UserID,
			Name:     claims.Name,
			Email:    claims.Email,
			Role:     claims.Role,
			AuthType: claims.AuthType,
		})
		c.Set(constants.CtxKeyUserID, claims.UserID)
		c.Set(constants.CtxKeyRole, claims.Role)

		c.Next()
	}
}

// CurrentUserID 当前登录用户ID，未认证时为0
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(constants.CtxKeyUserID)
}

// CurrentRole 当前登录用户角色
func CurrentRole(c *gin.Context) string {
	return c.GetString(constants.CtxKeyRole)
}
