package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pcs-crm/pkg/constants"
)

// RequestIDMiddleware 透传或生成 X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(constants.CtxKeyRequestID, id)
		c.Header(constants.HeaderRequestID, id)
		c.Next()
	}
}
