package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
)

var ErrEmptyQRContent = errors.New("二维码内容不能为空")

const qrcodeSize = 256

type QRCodeService struct {
	storage storage.Storage
}

func NewQRCodeService(store storage.Storage) *QRCodeService {
	return &QRCodeService{storage: store}
}

// Generate 生成内容的 PNG 二维码并保存
func (s *QRCodeService) Generate(content string) (*dto.QRCodeResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyQRContent
	}

	png, err := qrcode.Encode(content, qrcode.Medium, qrcodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode qrcode: %w", err)
	}

	url, err := s.storage.Put(storage.NewKey(qrcodeDir, ".png"), png, "image/png")
	if err != nil {
		return nil, fmt.Errorf("store qrcode: %w", err)
	}
	return &dto.QRCodeResponse{URL: url}, nil
}
