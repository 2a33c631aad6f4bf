package imaging

import (
	"image"
	"math"
)

// DefaultEdgeThreshold is the gradient magnitude above which a pixel is an edge.
const DefaultEdgeThreshold = 30.0

// EdgeMask is a binary edge map with the size of the source image.
type EdgeMask struct {
	Width  int
	Height int
	bits   []bool
}

// NewEdgeMask returns an empty mask.
func NewEdgeMask(width, height int) *EdgeMask {
	return &EdgeMask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At reports whether x, y is an edge. Out-of-range coordinates are not.
func (m *EdgeMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks or clears x, y.
func (m *EdgeMask) Set(x, y int, edge bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = edge
}

// Count returns the number of edge pixels.
func (m *EdgeMask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// BuildEdgeMask computes a single-tap gradient over the interior of b.
//
// For Left+1 <= x < Right-1 and Top+1 <= y < Bottom-1:
//
//	gx = |L(x+1,y) - L(x-1,y)|
//	gy = |L(x,y+1) - L(x,y-1)|
//
// and the pixel is an edge when sqrt(gx² + gy²) > threshold. Pixels outside
// that interior are never edges. A non-positive threshold selects
// DefaultEdgeThreshold.
func BuildEdgeMask(l *Luma, b Bounds, threshold float64) *EdgeMask {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}
	m := NewEdgeMask(l.Width, l.Height)

	for y := b.Top + 1; y < b.Bottom-1; y++ {
		for x := b.Left + 1; x < b.Right-1; x++ {
			gx := float64(l.At(x+1, y) - l.At(x-1, y))
			gy := float64(l.At(x, y+1) - l.At(x, y-1))
			m.Set(x, y, math.Sqrt(gx*gx+gy*gy) > threshold)
		}
	}
	return m
}

// Image renders the mask with edges in white on black.
func (m *EdgeMask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, b := range m.bits {
		if b {
			img.Pix[i] = 255
		}
	}
	return img
}

// EdgeMaskResult contains an edge mask encoded as base64 PNG.
type EdgeMaskResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EdgePixels  int    `json:"edge_pixels"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG renders the mask and encodes it for transport.
func (m *EdgeMask) EncodePNG() (*EdgeMaskResult, error) {
	data, err := EncodePNGBase64(m.Image())
	if err != nil {
		return nil, err
	}
	return &EdgeMaskResult{
		Width:       m.Width,
		Height:      m.Height,
		EdgePixels:  m.Count(),
		ImageBase64: data,
		MimeType:    PNGMimeType,
	}, nil
}
