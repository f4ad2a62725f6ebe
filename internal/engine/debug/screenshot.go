// Package debug provides frame capture for inspecting the rendered surface.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout is embedded in every screenshot filename.
const timestampLayout = "2006-01-02_15-04-05"

// ScreenshotCapture writes frames to PNG files. A capture is requested
// from input handling and taken after the next draw, so the saved image
// is the frame the user was looking at.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	requested bool
	seq       int
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// Request marks the next drawn frame for capture.
func (sc *ScreenshotCapture) Request() {
	sc.requested = true
}

// TakeRequest reports whether a capture is pending and clears it.
func (sc *ScreenshotCapture) TakeRequest() bool {
	r := sc.requested
	sc.requested = false
	return r
}

// CaptureFromPixels captures a screenshot from raw pixel data.
// pixels should be in RGBA format with width*height*4 bytes.
// The image is flipped vertically since OpenGL has origin at bottom-left.
// tag is appended to the prefix, typically the visualization mode.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int, tag string) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.CaptureFromImage(img, tag)
}

// CaptureFromImage saves an existing image.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image, tag string) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename(tag)

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// GenerateFilename returns the next screenshot path. A sequence number
// keeps captures taken within the same second apart.
func (sc *ScreenshotCapture) GenerateFilename(tag string) string {
	sc.seq++

	parts := []string{sc.prefix}
	if tag = sanitize(tag); tag != "" {
		parts = append(parts, tag)
	}
	parts = append(parts, sc.now().Format(timestampLayout), fmt.Sprintf("%03d", sc.seq))

	filename := strings.Join(parts, "_") + ".png"
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// sanitize lower-cases s and replaces anything outside [a-z0-9] with '-'.
func sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, s)
}
