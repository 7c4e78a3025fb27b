package scrollfx

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot asks for the next drawn frame to be saved under ScreenshotDir
// as <timestamp>_<label>.png.
func (d *Document) Screenshot(label string) {
	d.screenshotQueue = append(d.screenshotQueue, label)
}

// flushScreenshots saves the finished frame once per pending label.
func (d *Document) flushScreenshots(screen *ebiten.Image) {
	if len(d.screenshotQueue) == 0 {
		return
	}
	labels := d.screenshotQueue
	d.screenshotQueue = d.screenshotQueue[:0]

	if err := os.MkdirAll(d.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("screenshots dropped", "dir", d.ScreenshotDir, "count", len(labels), "err", err)
		return
	}

	frame := captureFrame(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(d.ScreenshotDir, stamp+"_"+screenshotName(label)+".png")
		if err := writePNG(path, frame); err != nil {
			Logger().Warn("screenshot not saved", "path", path, "err", err)
		}
	}
}

// captureFrame copies the rendered screen into a straight-alpha image.
func captureFrame(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pix)
	return unpremultiply(pix, b.Dx(), b.Dy())
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to NRGBA.
func unpremultiply(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// screenshotName makes label safe for a file name: anything outside
// [A-Za-z0-9.-] becomes '_', and a blank label becomes "unlabeled".
func screenshotName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
