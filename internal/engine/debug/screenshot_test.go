package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCapture(dir string) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "ocean")
	sc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	return sc
}

func TestGenerateFilename(t *testing.T) {
	sc := fixedCapture("shots")

	assert.Equal(t, filepath.Join("shots", "ocean_base-color_2026-03-04_05-06-07_001.png"), sc.GenerateFilename("Base Color"))
	assert.Equal(t, filepath.Join("shots", "ocean_2026-03-04_05-06-07_002.png"), sc.GenerateFilename(""))
}

func TestRequest(t *testing.T) {
	sc := NewScreenshotCapture("", "ocean")
	assert.False(t, sc.TakeRequest())

	sc.Request()
	assert.True(t, sc.TakeRequest())
	assert.False(t, sc.TakeRequest())
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := fixedCapture(filepath.Join(dir, "nested"))

	// 1x2 image: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2, "Wireframe")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)

	r, _, b, _ = img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, b)
}

func TestCaptureFromPixelsValidates(t *testing.T) {
	sc := fixedCapture(t.TempDir())

	_, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1, "")
	assert.ErrorContains(t, err, "size mismatch")

	_, err = sc.CaptureFromPixels(nil, 0, 0, "")
	assert.ErrorContains(t, err, "invalid screenshot size")
}
