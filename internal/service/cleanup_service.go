package service

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
)

// StaleFile 本地存储中可以清理的文件
type StaleFile struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// CleanupService 清理本地存储里没有被任何记录引用的上传文件
type CleanupService struct {
	db    *gorm.DB
	store *storage.DiskStorage
}

func NewCleanupService(db *gorm.DB, store *storage.DiskStorage) *CleanupService {
	return &CleanupService{db: db, store: store}
}

// referencedKeys 收集壁纸、用户头像/背景和帖子图片引用的存储键
func (s *CleanupService) referencedKeys() (map[string]bool, error) {
	keys := make(map[string]bool)
	add := func(url string) {
		if key := s.store.KeyOf(url); key != "" {
			keys[key] = true
		}
	}

	var wps []model.Wallpaper
	if err := s.db.Select("url", "thumbnail_url").Find(&wps).Error; err != nil {
		return nil, err
	}
	for _, wp := range wps {
		add(wp.URL)
		add(wp.ThumbnailURL)
	}

	var users []model.User
	if err := s.db.Select("avatar_url", "background_url").Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		add(u.AvatarURL)
		add(u.BackgroundURL)
	}

	var posts []model.Post
	if err := s.db.Select("images").Find(&posts).Error; err != nil {
		return nil, err
	}
	for _, p := range posts {
		for _, url := range decodeImages(p.Images) {
			add(url)
		}
	}
	return keys, nil
}

// FindOrphans 找出上传目录中未被引用且早于 minAge 的文件
func (s *CleanupService) FindOrphans(minAge time.Duration) ([]StaleFile, error) {
	refs, err := s.referencedKeys()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-minAge)
	var orphans []StaleFile
	for _, dir := range []string{wallpaperDir, thumbnailDir, avatarDir} {
		files, err := s.scan(dir, cutoff)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !refs[f.Key] {
				orphans = append(orphans, f)
			}
		}
	}
	return orphans, nil
}

// FindExpiredQRCodes 二维码不落库，只按时间过期
func (s *CleanupService) FindExpiredQRCodes(maxAge time.Duration) ([]StaleFile, error) {
	return s.scan(qrcodeDir, time.Now().Add(-maxAge))
}

func (s *CleanupService) scan(dir string, cutoff time.Time) ([]StaleFile, error) {
	root := filepath.Join(s.store.BasePath, dir)
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []StaleFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}
		files = append(files, StaleFile{
			Key:     path.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// Remove 删除文件，返回成功删除的数量与释放的字节数
func (s *CleanupService) Remove(files []StaleFile) (int, int64) {
	var (
		count int
		freed int64
	)
	for _, f := range files {
		if err := s.store.Delete(f.Key); err != nil && !os.IsNotExist(err) {
			log.Warnf("[cleanup] failed to delete %s: %v", f.Key, err)
			continue
		}
		count++
		freed += f.Size
	}
	return count, freed
}

// DiskUsage 统计存储根目录下的文件数与总大小
func (s *CleanupService) DiskUsage() (int, int64) {
	var (
		count int
		size  int64
	)
	_ = filepath.WalkDir(s.store.BasePath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			count++
			size += info.Size()
		}
		return nil
	})
	return count, size
}
