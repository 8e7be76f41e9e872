package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type WallpaperHandler struct {
	wallpaperService *service.WallpaperService
	uploadService    *service.UploadService
}

func NewWallpaperHandler(wallpaperService *service.WallpaperService, uploadService *service.UploadService) *WallpaperHandler {
	return &WallpaperHandler{
		wallpaperService: wallpaperService,
		uploadService:    uploadService,
	}
}

func (h *WallpaperHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWallpaperNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrNoResults):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrInvalidSort),
		errors.Is(err, service.ErrEmptyKeyword),
		errors.Is(err, service.ErrEmptyImageURL),
		errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrEmptyFile):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrWallpaperExists):
		response.DuplicateError(c, err.Error())
	case errors.Is(err, service.ErrWallpaperPermission):
		response.PermissionError(c, err.Error())
	default:
		internalError(c, err)
	}
}

// Upload 上传壁纸图片
// POST /api/v1/wallpapers/upload
func (h *WallpaperHandler) Upload(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "请上传文件")
		return
	}
	defer file.Close()

	resp, err := h.uploadService.UploadWallpaper(file, header.Filename)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, "上传成功", resp)
}

// Save 保存壁纸信息
// POST /api/v1/wallpapers
func (h *WallpaperHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SaveWallpaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.wallpaperService.Save(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, "保存成功", item)
}

// List 获取全部壁纸
// GET /api/v1/wallpapers
func (h *WallpaperHandler) List(c *gin.Context) {
	items, err := h.wallpaperService.List()
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Get 获取壁纸详情
// GET /api/v1/wallpapers/:id
func (h *WallpaperHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	item, err := h.wallpaperService.Get(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, item)
}

// Hot 热门壁纸
// GET /api/v1/wallpapers/hot?limit=20
func (h *WallpaperHandler) Hot(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.ParamError(c, "无效的 limit")
		return
	}

	items, err := h.wallpaperService.Hot(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Sorted 按最新、喜欢数或下载数排序
// GET /api/v1/wallpapers/sorted?by=new|like|download
func (h *WallpaperHandler) Sorted(c *gin.Context) {
	items, err := h.wallpaperService.Sorted(c.Query("by"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// ByTag 按标签获取壁纸
// GET /api/v1/wallpapers/tags/:name
func (h *WallpaperHandler) ByTag(c *gin.Context) {
	items, err := h.wallpaperService.ByTag(c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Search 搜索壁纸
// GET /api/v1/wallpapers/search?keyword=
func (h *WallpaperHandler) Search(c *gin.Context) {
	items, err := h.wallpaperService.Search(c.Query("keyword"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Relation 当前用户与壁纸的关系
// GET /api/v1/wallpapers/:id/relation
func (h *WallpaperHandler) Relation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	rel, err := h.wallpaperService.Relation(userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, rel)
}

// Like 喜欢/取消喜欢
// POST /api/v1/wallpapers/:id/like
func (h *WallpaperHandler) Like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	resp, err := h.wallpaperService.ToggleLike(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, resp)
}

// Collect 收藏/取消收藏
// POST /api/v1/wallpapers/:id/collect
func (h *WallpaperHandler) Collect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	resp, err := h.wallpaperService.ToggleCollect(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, resp)
}

// Download 下载壁纸
// POST /api/v1/wallpapers/:id/download
func (h *WallpaperHandler) Download(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	resp, err := h.wallpaperService.Download(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, resp)
}

// Delete 删除壁纸
// DELETE /api/v1/wallpapers/:id
func (h *WallpaperHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	if err := h.wallpaperService.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// Moderate 提交壁纸审核（管理员）
// POST /api/v1/wallpapers/:id/moderate
func (h *WallpaperHandler) Moderate(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的壁纸ID")
	if !ok {
		return
	}

	result, err := h.wallpaperService.Moderate(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}

// ModerateImage 审核任意图片地址
// POST /api/v1/verify/moderate-image
func (h *WallpaperHandler) ModerateImage(c *gin.Context) {
	var req dto.ModerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.wallpaperService.ModerateURL(c.Request.Context(), req.ImageURL)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}
