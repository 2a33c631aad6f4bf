package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped plan preview.
type CropResult struct {
	Bounds      Bounds `json:"bounds"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts b from img and optionally rescales it. Right and Bottom are
// exclusive.
func Crop(img image.Image, b Bounds, scale float64) (*CropResult, error) {
	cropped, err := CropImage(img, b, scale)
	if err != nil {
		return nil, err
	}

	data, err := EncodePNGBase64(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Bounds:      b,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: data,
		MimeType:    PNGMimeType,
	}, nil
}

// CropImage is Crop without the encoding step.
func CropImage(img image.Image, b Bounds, scale float64) (*image.NRGBA, error) {
	ib := img.Bounds()
	width, height := ib.Dx(), ib.Dy()

	if b.Left < 0 || b.Top < 0 || b.Right > width || b.Bottom > height {
		return nil, fmt.Errorf("crop region %s outside image bounds (0,0)-(%d,%d)", b, width, height)
	}
	if b.Empty() {
		return nil, fmt.Errorf("invalid crop region %s: left must be < right, top must be < bottom", b)
	}

	// Bounds are relative to the top-left pixel, whatever the image origin.
	cropped := imaging.Crop(img, b.Rect().Add(ib.Min))

	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return cropped, nil
}
