package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/api/middleware"
	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type UserHandler struct {
	userService      *service.UserService
	wallpaperService *service.WallpaperService
}

func NewUserHandler(userService *service.UserService, wallpaperService *service.WallpaperService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		wallpaperService: wallpaperService,
	}
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrInvalidGender),
		errors.Is(err, service.ErrInvalidBirth),
		errors.Is(err, service.ErrEmptyBackground),
		errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrEmptyFile):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowing):
		response.DuplicateError(c, err.Error())
	default:
		internalError(c, err)
	}
}

// GetProfile 获取用户主页
// GET /api/v1/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := parseID(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	// 邮箱只对本人可见
	if current, _ := middleware.GetUserID(c); current != userID {
		profile.Email = ""
	}

	response.Success(c, profile)
}

// Me 获取当前用户信息
// GET /api/v1/user/profile
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新个人资料
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "更新成功", profile)
}

// UploadAvatar 上传头像
// POST /api/v1/user/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "请上传头像文件")
		return
	}
	defer file.Close()

	avatarURL, err := h.userService.UploadAvatar(userID, file, header.Filename)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "头像上传成功", &dto.AvatarResponse{AvatarURL: avatarURL})
}

// UpdateBackground 更新主页背景
// PUT /api/v1/user/background
func (h *UserHandler) UpdateBackground(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.userService.UpdateBackground(userID, req.BackgroundImageURL); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "背景更新成功", nil)
}

// Follow 关注用户
// POST /api/v1/users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	if err := h.userService.Follow(userID, targetID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "关注成功", nil)
}

// Unfollow 取消关注
// DELETE /api/v1/users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	if err := h.userService.Unfollow(userID, targetID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "已取消关注", nil)
}

// FollowCounts 关注数与粉丝数
// GET /api/v1/users/:id/follow-counts
func (h *UserHandler) FollowCounts(c *gin.Context) {
	userID, ok := parseID(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	counts, err := h.userService.FollowCounts(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, counts)
}

// IsFollowing 是否关注了某作者
// GET /api/v1/users/:id/following/:authorId
func (h *UserHandler) IsFollowing(c *gin.Context) {
	userID, ok := parseID(c, "id", "无效的用户ID")
	if !ok {
		return
	}
	authorID, ok := parseID(c, "authorId", "无效的作者ID")
	if !ok {
		return
	}

	status, err := h.userService.IsFollowing(userID, authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, status)
}

// Wallpapers 用户上传的壁纸
// GET /api/v1/users/:id/wallpapers
func (h *UserHandler) Wallpapers(c *gin.Context) {
	h.listWallpapers(c, h.wallpaperService.ListByUser)
}

// Likes 用户喜欢的壁纸
// GET /api/v1/users/:id/likes
func (h *UserHandler) Likes(c *gin.Context) {
	h.listWallpapers(c, h.wallpaperService.ListLiked)
}

// Collects 用户收藏的壁纸
// GET /api/v1/users/:id/collects
func (h *UserHandler) Collects(c *gin.Context) {
	h.listWallpapers(c, h.wallpaperService.ListCollected)
}

func (h *UserHandler) listWallpapers(c *gin.Context, list func(int64) ([]*dto.WallpaperItem, error)) {
	userID, ok := parseID(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	items, err := list(userID)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, items)
}

// TopUsers 发帖最多的用户
// GET /api/v1/users/top
func (h *UserHandler) TopUsers(c *gin.Context) {
	users, err := h.userService.TopUsers()
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, users)
}

// ListUsers 管理员查看全部用户
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Query("role"))
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, users)
}

// ListAdmins 管理员列表
// GET /api/v1/admin/administrators
func (h *UserHandler) ListAdmins(c *gin.Context) {
	users, err := h.userService.ListUsers(model.RoleAdmin)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, users)
}
