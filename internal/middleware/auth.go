package middleware

import (
	"net/http"
	"strings"

	"github.com/DennisDemir24/hobby-link/internal/identity"

	"github.com/gin-gonic/gin"
)

const ContextSubjectKey = "subject"

// AuthMiddleware 解析 Bearer 会话 token，注入调用者身份
func AuthMiddleware(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		sub, err := provider.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextSubjectKey, sub)
		c.Next()
	}
}

// SubjectFrom 从请求上下文取已认证身份；未认证返回 nil
func SubjectFrom(c *gin.Context) *identity.Subject {
	v, ok := c.Get(ContextSubjectKey)
	if !ok {
		return nil
	}
	sub, _ := v.(*identity.Subject)
	return sub
}
