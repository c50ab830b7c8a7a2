package graphics

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/bmp"
)

// ReadFramebuffer reads the current color buffer into an image with the
// origin at the top-left corner.
func ReadFramebuffer(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFramebuffer, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	FlipRows(img)
	return img, nil
}

// FlipRows mirrors img vertically in place. GL rows start at the bottom.
func FlipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	stride := img.Stride
	tmp := make([]byte, stride)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// EncodeCapture writes img as a BMP.
func EncodeCapture(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encode capture: %w", err)
	}
	return nil
}

// SaveCapture writes img into dir under a timestamped name and returns the path.
func SaveCapture(dir string, img image.Image, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create capture dir: %w", err)
	}
	name := filepath.Join(dir, "frame-"+now.Format("20060102-150405.000")+".bmp")
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create capture file: %w", err)
	}
	if err := EncodeCapture(f, img); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}
