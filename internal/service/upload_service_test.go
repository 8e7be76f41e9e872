package service

import (
	"bytes"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
)

func setupUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()

	dir := t.TempDir()
	return NewUploadService(storage.NewDiskStorage(dir, testBaseURL), testConfig()), dir
}

func TestUploadService_UploadWallpaper(t *testing.T) {
	svc, dir := setupUploadService(t)

	data := pngBytes(t, 64, 32)
	resp, err := svc.UploadWallpaper(bytes.NewReader(data), "Sunset.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.URL, testBaseURL+"/wallpapers/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".png"))
	assert.Equal(t, 64, resp.Width)
	assert.Equal(t, 32, resp.Height)
	assert.Equal(t, "png", resp.Format)
	assert.Equal(t, int64(len(data)), resp.Size)
	assert.Equal(t, "image/png", resp.MimeType)
	assert.Equal(t, "Sunset.PNG", resp.OriginalName)

	require.NotEmpty(t, resp.ThumbnailURL)
	thumbKey := strings.TrimPrefix(resp.ThumbnailURL, testBaseURL+"/")
	thumb, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(thumbKey)))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestUploadService_UploadWallpaper_Errors(t *testing.T) {
	svc, _ := setupUploadService(t)

	tests := []struct {
		name     string
		data     []byte
		filename string
		wantErr  error
	}{
		{"bad extension", []byte("zip"), "archive.zip", ErrInvalidFileType},
		{"no extension", []byte("data"), "README", ErrInvalidFileType},
		{"too large", make([]byte, (1<<20)+1), "huge.png", ErrFileTooLarge},
		{"empty", nil, "empty.png", ErrEmptyFile},
		{"not an image", []byte("plain text"), "fake.jpg", ErrInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadWallpaper(bytes.NewReader(tt.data), tt.filename)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtAllowed(t *testing.T) {
	allowed := []string{".png", ".JPG"}
	assert.True(t, extAllowed(".png", allowed))
	assert.True(t, extAllowed(".jpg", allowed))
	assert.False(t, extAllowed(".gif", allowed))
	assert.False(t, extAllowed("", allowed))
}
