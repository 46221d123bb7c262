package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ImageSize represents a target size for resized output.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

var (
	// SizeThumbnail is rendered next to verification documents in the admin
	// review queue.
	SizeThumbnail = ImageSize{Name: "thumbnail", Width: 150, Height: 150}
	SizeMedium    = ImageSize{Name: "medium", Width: 800, Height: 800}
)

// Processor handles image decode/resize/encode.
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		quality: quality,
	}
}

// ProcessImage decodes, resizes to fit the size box, and re-encodes.
func (p *Processor) ProcessImage(reader io.Reader, size ImageSize) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.resize(img, size.Width, size.Height)

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		format = "jpeg"
	}

	return &buf, format, nil
}

// resize fits the image inside (maxWidth, maxHeight) preserving aspect ratio.
// Images already inside the box pass through unchanged.
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratioW := float64(maxWidth) / float64(width)
	ratioH := float64(maxHeight) / float64(height)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}

	newWidth := int(float64(width) * ratio)
	newHeight := int(float64(height) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
