package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPostContent):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPostPermission):
		response.PermissionError(c, err.Error())
	default:
		internalError(c, err)
	}
}

// Create 发布帖子
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.postService.Create(userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, "发布成功", resp)
}

// List 获取全部帖子
// GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	items, err := h.postService.List()
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// View 增加浏览量
// PUT /api/v1/posts/:id/view
func (h *PostHandler) View(c *gin.Context) {
	postID, ok := parseID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	if err := h.postService.View(postID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "浏览量已更新", nil)
}

// Like 点赞/取消点赞
// PUT /api/v1/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	resp, err := h.postService.ToggleLike(userID, postID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, resp)
}

// Delete 删除帖子，连同评论、点赞和话题绑定
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	if err := h.postService.Delete(userID, postID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
