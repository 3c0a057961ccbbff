package services

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ImageService downsizes photographed receipts before they are archived.
type ImageService struct {
	maxSide int
}

func NewImageService(maxSide int) *ImageService {
	return &ImageService{maxSide: maxSide}
}

// Shrink re-encodes a JPEG or PNG whose longest edge exceeds maxSide.
// Other files, and images already small enough, are returned unchanged.
func (s *ImageService) Shrink(data []byte, filename string) ([]byte, error) {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil || (format != imaging.JPEG && format != imaging.PNG) {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, invalidInput(fmt.Sprintf("imagen ilegible: %v", err))
	}
	bounds := img.Bounds()
	if bounds.Dx() <= s.maxSide && bounds.Dy() <= s.maxSide {
		return data, nil
	}

	resized := imaging.Fit(img, s.maxSide, s.maxSide, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("error al guardar imagen: %w", err)
	}
	return buf.Bytes(), nil
}
