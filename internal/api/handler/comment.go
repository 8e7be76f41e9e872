package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrParentNotInPost):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrCommentPermission):
		response.PermissionError(c, err.Error())
	default:
		internalError(c, err)
	}
}

// Create 发表评论
// POST /api/v1/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(userID, postID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, "评论成功", comment)
}

// List 获取帖子的评论，每条只带直接回复
// GET /api/v1/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := parseID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	items, err := h.commentService.ListByPost(postID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Tree 获取单条评论及其全部回复
// GET /api/v1/comments/:id
func (h *CommentHandler) Tree(c *gin.Context) {
	commentID, ok := parseID(c, "id", "无效的评论ID")
	if !ok {
		return
	}

	tree, err := h.commentService.GetTree(commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, tree)
}

// Delete 删除评论及其所有回复
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "id", "无效的评论ID")
	if !ok {
		return
	}

	deleted, err := h.commentService.Delete(userID, commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", &dto.DeleteCommentResponse{Deleted: deleted})
}
