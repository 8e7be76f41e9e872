package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/qs3c/wallpaper_server/internal/api/middleware"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
)

// parseID 解析路径中的 ID，失败时写入参数错误
func parseID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, message)
		return 0, false
	}
	return id, true
}

// currentUser 获取登录用户，未登录时写入认证错误
func currentUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return 0, false
	}
	return userID, true
}

// internalError 记录底层错误后返回 500
func internalError(c *gin.Context, err error) {
	log.WithFields(log.Fields{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
	}).Errorf("[handler] %v", err)
	_ = c.Error(err)
	response.ServerError(c, "")
}
