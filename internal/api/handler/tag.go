package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// List 获取全部标签
// GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, tags)
}

// Create 创建标签（管理员）
// POST /api/v1/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTag):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrTagExists):
			response.DuplicateError(c, err.Error())
		default:
			internalError(c, err)
		}
		return
	}
	response.Created(c, "创建成功", tag)
}
