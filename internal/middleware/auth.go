package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/config"
	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

// TokenChecker 查询令牌是否已被吊销。为 nil 时跳过吊销检查，
// 缓存故障按未吊销处理（登出是尽力而为的）。
type TokenChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func AuthMiddleware(cfg *config.Config, checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if checker != nil {
			if revoked, err := checker.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
				util.Unauthorized(c)
				c.Abort()
				return
			}
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware 仅放行具备指定角色之一的会话
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		// 管理员声明必须和角色一致，防止旧令牌越权
		if hasRole && roles[0] == model.Admin && !user.Admin {
			hasRole = false
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
