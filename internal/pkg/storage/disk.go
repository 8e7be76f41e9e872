package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DiskStorage 本地磁盘驱动，文件由 HTTP 服务以 BaseURL 前缀对外提供
type DiskStorage struct {
	BasePath  string
	BaseURL   string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath, baseURL string) *DiskStorage {
	return &DiskStorage{
		BasePath: basePath,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) getFullPath(key string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(key))
}

func (s *DiskStorage) Put(key string, data []byte, _ string) (string, error) {
	fileName := s.getFullPath(key)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(file, bytes.NewReader(data))
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return s.BaseURL + "/" + key, nil
}

func (s *DiskStorage) Delete(key string) error {
	err := os.Remove(s.getFullPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// KeyOf 去掉 BaseURL 前缀得到存储键，不是本驱动的 URL 返回空
func (s *DiskStorage) KeyOf(url string) string {
	if !strings.HasPrefix(url, s.BaseURL+"/") {
		return ""
	}
	return strings.TrimPrefix(url, s.BaseURL+"/")
}
