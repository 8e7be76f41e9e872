package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/qs3c/wallpaper_server/internal/pkg/jwt"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

// AdminChecker 判断用户是否为管理员
type AdminChecker func(userID int64) (bool, error)

// bearerToken 取出 Authorization 头中的 token，头缺失时 present 为 false
func bearerToken(c *gin.Context) (token string, present bool, ok bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false, false
	}
	token = strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", true, false
	}
	return token, true, true
}

// Auth JWT 认证中间件，上传、点赞、评论等写操作都挂在它之后
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, present, ok := bearerToken(c)
		if !present {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}
		if !ok {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if errors.Is(err, jwt.ErrExpiredToken) {
			response.AuthError(c, "登录已过期，请重新登录")
			c.Abort()
			return
		}
		if err != nil {
			response.AuthError(c, "认证失败")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth 公开接口使用，token 有效时带上当前用户，
// 用于壁纸点赞收藏状态等与查看者相关的字段
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, _, ok := bearerToken(c); ok {
			if claims, err := jwt.ParseToken(tokenString, jwtSecret); err == nil {
				c.Set(UserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

// RequireAdmin 管理员权限，需挂在 Auth 之后
func RequireAdmin(isAdmin AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "请先登录")
			c.Abort()
			return
		}

		admin, err := isAdmin(userID)
		if err != nil {
			log.Errorf("[auth] check admin for user %d failed: %v", userID, err)
			response.ServerError(c, "")
			c.Abort()
			return
		}
		if !admin {
			response.PermissionError(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
