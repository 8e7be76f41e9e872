package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/imaging"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
)

var (
	ErrFileTooLarge    = errors.New("文件过大")
	ErrInvalidFileType = errors.New("不支持的文件类型")
	ErrEmptyFile       = errors.New("文件为空")
)

const (
	wallpaperDir = "wallpapers"
	thumbnailDir = "thumbnails"
	avatarDir    = "avatars"
	qrcodeDir    = "qrcodes"
)

type UploadService struct {
	storage storage.Storage
	cfg     *config.Config
}

func NewUploadService(store storage.Storage, cfg *config.Config) *UploadService {
	return &UploadService{
		storage: store,
		cfg:     cfg,
	}
}

// UploadWallpaper 保存壁纸原图并生成缩略图
func (s *UploadService) UploadWallpaper(file io.Reader, filename string) (*dto.UploadResponse, error) {
	data, ext, err := readImage(file, filename, s.cfg.Upload.MaxSize, s.cfg.Upload.AllowedExtensions)
	if err != nil {
		return nil, err
	}

	info, err := imaging.Inspect(data)
	if err != nil {
		return nil, ErrInvalidFileType
	}

	contentType := storage.ContentTypeByExt(ext)
	url, err := s.storage.Put(storage.NewKey(wallpaperDir, ext), data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store wallpaper: %w", err)
	}

	resp := &dto.UploadResponse{
		URL:          url,
		Width:        info.Width,
		Height:       info.Height,
		Format:       info.Format,
		Size:         int64(len(data)),
		MimeType:     contentType,
		OriginalName: filename,
	}

	// 缩略图失败不影响上传结果
	if width := s.cfg.Upload.ThumbnailWidth; width > 0 {
		thumb, err := imaging.Thumbnail(data, width)
		if err != nil {
			log.Warnf("[upload] thumbnail for %s failed: %v", filename, err)
			return resp, nil
		}
		thumbURL, err := s.storage.Put(storage.NewKey(thumbnailDir, ".jpg"), thumb, "image/jpeg")
		if err != nil {
			log.Warnf("[upload] store thumbnail for %s failed: %v", filename, err)
			return resp, nil
		}
		resp.ThumbnailURL = thumbURL
	}

	return resp, nil
}

// readImage 校验扩展名并读取不超过 limit 字节的内容
func readImage(r io.Reader, filename string, limit int64, allowed []string) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extAllowed(ext, allowed) {
		return nil, "", ErrInvalidFileType
	}

	var reader io.Reader = r
	if limit > 0 {
		reader = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, "", ErrFileTooLarge
	}
	return data, ext, nil
}

func extAllowed(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}
