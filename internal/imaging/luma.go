package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Bounds is an axis-aligned pixel box. Left/Top are inclusive; Right/Bottom
// are treated as exclusive by the row and column scans.
type Bounds struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width is Right - Left.
func (b Bounds) Width() int { return b.Right - b.Left }

// Height is Bottom - Top.
func (b Bounds) Height() int { return b.Bottom - b.Top }

// Empty reports whether the box has no interior.
func (b Bounds) Empty() bool { return b.Right <= b.Left || b.Bottom <= b.Top }

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// ClampTo restricts b to [0, width-1] x [0, height-1].
func (b Bounds) ClampTo(width, height int) Bounds {
	return Bounds{
		Left:   max(0, b.Left),
		Top:    max(0, b.Top),
		Right:  min(width-1, b.Right),
		Bottom: min(height-1, b.Bottom),
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

// Luma is a grayscale copy of an image where each value is the integer mean
// of the red, green and blue channels. Coordinates start at 0,0.
type Luma struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewLuma converts img. The source is normalized with imaging.Clone so any
// decoder's colour model and origin are handled the same way.
func NewLuma(img image.Image) *Luma {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	l := &Luma{Width: w, Height: h, Pix: make([]uint8, w*h)}

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			r, g, b := int(row[x*4]), int(row[x*4+1]), int(row[x*4+2])
			l.Pix[y*w+x] = uint8((r + g + b) / 3)
		}
	}
	return l
}

// At returns the luminance at x, y. Out-of-range coordinates read as white.
func (l *Luma) At(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 255
	}
	return int(l.Pix[y*l.Width+x])
}
