package service

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
)

func TestQRCodeService_Generate(t *testing.T) {
	dir := t.TempDir()
	svc := NewQRCodeService(storage.NewDiskStorage(dir, testBaseURL))

	resp, err := svc.Generate("http://img/sunset.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.URL, testBaseURL+"/qrcodes/"))

	key := strings.TrimPrefix(resp.URL, testBaseURL+"/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrcodeSize, cfg.Width)

	_, err = svc.Generate("  ")
	assert.ErrorIs(t, err, ErrEmptyQRContent)
}
