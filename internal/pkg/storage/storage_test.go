package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/wallpaper_server/config"
)

func TestDiskStorage_PutDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStorage(dir, "http://127.0.0.1:5000/static/")

	url, err := s.Put("wallpapers/a.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000/static/wallpapers/a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "wallpapers", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.Equal(t, "wallpapers/a.png", s.KeyOf(url))
	assert.Empty(t, s.KeyOf("https://cdn.example.com/wallpapers/a.png"))

	require.NoError(t, s.Delete("wallpapers/a.png"))
	_, err = os.Stat(filepath.Join(dir, "wallpapers", "a.png"))
	assert.True(t, os.IsNotExist(err))

	// 删除不存在的文件不报错
	assert.NoError(t, s.Delete("wallpapers/a.png"))
}

func TestNewKey(t *testing.T) {
	key := NewKey("avatars", "PNG")
	assert.True(t, strings.HasPrefix(key, "avatars/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, NewKey("avatars", ".png"))
}

func TestContentTypeByExt(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentTypeByExt(".JPG"))
	assert.Equal(t, "image/webp", ContentTypeByExt(".webp"))
	assert.Equal(t, "application/octet-stream", ContentTypeByExt(".bin"))
}

func TestNew_Drivers(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = DriverLocal
	cfg.Storage.BaseDir = t.TempDir()

	s, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &DiskStorage{}, s)

	cfg.Storage.Driver = "ftp"
	_, err = New(cfg)
	assert.Error(t, err)
}
