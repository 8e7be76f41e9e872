package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/service"
)

type QRCodeHandler struct {
	qrcodeService *service.QRCodeService
}

func NewQRCodeHandler(qrcodeService *service.QRCodeService) *QRCodeHandler {
	return &QRCodeHandler{
		qrcodeService: qrcodeService,
	}
}

// Generate 生成二维码
// POST /api/v1/qrcode
func (h *QRCodeHandler) Generate(c *gin.Context) {
	var req dto.QRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.qrcodeService.Generate(req.ImgURL)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQRContent) {
			response.ParamError(c, err.Error())
			return
		}
		internalError(c, err)
		return
	}
	response.Created(c, "生成成功", resp)
}
