package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
	}
}

func (h *TopicHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyTopic):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrPostNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrTopicExists),
		errors.Is(err, service.ErrAlreadyBound):
		response.DuplicateError(c, err.Error())
	default:
		internalError(c, err)
	}
}

// List 获取全部话题
// GET /api/v1/topics
func (h *TopicHandler) List(c *gin.Context) {
	items, err := h.topicService.List()
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Create 创建话题
// POST /api/v1/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.topicService.Create(&req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, "创建成功", item)
}

// Bind 帖子绑定话题
// POST /api/v1/topics/bind
func (h *TopicHandler) Bind(c *gin.Context) {
	var req dto.BindTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.topicService.Bind(&req); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "绑定成功", nil)
}

// Hot 热门话题
// GET /api/v1/topics/hot
func (h *TopicHandler) Hot(c *gin.Context) {
	items, err := h.topicService.Hot(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Get 话题详情，同时增加浏览量
// GET /api/v1/topics/:id
func (h *TopicHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的话题ID")
	if !ok {
		return
	}

	item, err := h.topicService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, item)
}

// Posts 话题下的帖子
// GET /api/v1/topics/:id/posts
func (h *TopicHandler) Posts(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的话题ID")
	if !ok {
		return
	}

	items, err := h.topicService.Posts(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, items)
}
