package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/pkg/oss"
)

const (
	DriverLocal = "local"
	DriverOSS   = "oss"
)

// Storage 文件存储，Put 返回对外可访问的 URL，KeyOf 无法识别的 URL 返回空
type Storage interface {
	Put(key string, data []byte, contentType string) (string, error)
	Delete(key string) error
	KeyOf(url string) string
}

// New 按配置创建存储驱动
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case "", DriverLocal:
		return NewDiskStorage(cfg.Storage.BaseDir, cfg.Storage.BaseURL), nil
	case DriverOSS:
		client, err := oss.NewClient(&cfg.OSS)
		if err != nil {
			return nil, err
		}
		return &OSSStorage{client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// NewKey 生成 dir/<uuid><ext> 形式的存储键
func NewKey(dir, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(dir, uuid.NewString()+ext)
}

// ContentTypeByExt 根据扩展名获取 Content-Type
func ContentTypeByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// OSSStorage 阿里云 OSS 驱动
type OSSStorage struct {
	client *oss.Client
}

func (s *OSSStorage) Put(key string, data []byte, contentType string) (string, error) {
	return s.client.UploadFile(key, data, contentType)
}

func (s *OSSStorage) Delete(key string) error {
	return s.client.Delete(key)
}

func (s *OSSStorage) KeyOf(url string) string {
	return s.client.ExtractObjectKey(url)
}
