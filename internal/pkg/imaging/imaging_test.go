package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	info, err := Inspect(pngBytes(t, 64, 32))
	require.NoError(t, err)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 32, info.Height)
	assert.Equal(t, "png", info.Format)
}

func TestInspect_NotAnImage(t *testing.T) {
	_, err := Inspect([]byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestThumbnail_Shrinks(t *testing.T) {
	thumb, err := Thumbnail(pngBytes(t, 200, 100), 50)
	require.NoError(t, err)

	info, err := Inspect(thumb)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, 50, info.Width)
	assert.Equal(t, 25, info.Height)
}

func TestThumbnail_KeepsSmallImages(t *testing.T) {
	thumb, err := Thumbnail(pngBytes(t, 40, 20), 100)
	require.NoError(t, err)

	info, err := Inspect(thumb)
	require.NoError(t, err)
	assert.Equal(t, 40, info.Width)
}
