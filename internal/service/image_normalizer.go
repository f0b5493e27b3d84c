package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"pdf-processing-service/internal/domain"
	apperrors "pdf-processing-service/pkg/errors"
)

// ImageNormalizer rescales page images so their longest edge matches a
// target pixel size and encodes them for transport to the layout parser.
type ImageNormalizer struct{}

// NewImageNormalizer creates a new image normalizer
func NewImageNormalizer() *ImageNormalizer {
	return &ImageNormalizer{}
}

// Normalize rescales img so max(width, height) == longestSide, keeping
// the aspect ratio within integer rounding. Catmull-Rom resampling is
// used because the layout parser is sensitive to text-edge fidelity.
func (n *ImageNormalizer) Normalize(img domain.PageImage, longestSide int) (domain.PageImage, error) {
	if longestSide <= 0 {
		return domain.PageImage{}, apperrors.NewValidationError("longest side must be positive")
	}
	if img.Image == nil || img.Width <= 0 || img.Height <= 0 {
		return domain.PageImage{}, apperrors.NewValidationError("image has no pixels")
	}

	longest := img.Width
	if img.Height > img.Width {
		longest = img.Height
	}
	scale := float64(longestSide) / float64(longest)

	newWidth := int(math.Round(float64(img.Width) * scale))
	newHeight := int(math.Round(float64(img.Height) * scale))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img.Image, img.Image.Bounds(), draw.Src, nil)

	return domain.PageImage{
		Index:  img.Index,
		Image:  dst,
		Width:  newWidth,
		Height: newHeight,
		Path:   img.Path,
	}, nil
}

// Encode serializes the image to PNG (lossless) and base64-encodes it
// for embedding in a JSON request body.
func (n *ImageNormalizer) Encode(img domain.PageImage) (string, error) {
	if img.Image == nil {
		return "", apperrors.NewEncodeError("cannot encode empty image", nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Image); err != nil {
		return "", apperrors.NewEncodeError("failed to encode image as PNG", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
