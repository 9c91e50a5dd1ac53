package app

import (
	"net/http"
	"strings"

	"library_api/auth"
	"library_api/config"
	"library_api/db"

	"github.com/gin-gonic/gin"
)

// AuthRequired 校验 Authorization: Bearer <token>。
// token 本身无状态（签名 + 过期时间），查库只为取 isAdmin。
func AuthRequired(repo *db.Repo, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, prefix), cfg.SecretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid or expired token"})
			return
		}

		u, err := repo.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		// 把身份放进上下文，后续 handler 可用
		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("isAdmin", u.IsAdmin)

		c.Next()
	}
}

// AdminOnly 依赖 AuthRequired 已设置的 isAdmin
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("isAdmin")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if isAdmin, _ := v.(bool); !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
