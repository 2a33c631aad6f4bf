package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// Segment is a straight line between two pixel positions.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// OverlayOptions selects what is drawn over a plan image.
type OverlayOptions struct {
	// PlanBounds outlines the detected drawing area when set.
	PlanBounds *Bounds

	// Segments are drawn one pixel wide, typically merged lines or walls.
	Segments []Segment

	// Rects are candidate fixtures. With NumberRects each is labelled with its
	// 1-based index.
	Rects       []image.Rectangle
	NumberRects bool

	// GridSpacing draws a reference grid when positive.
	GridSpacing int

	BoundsColor  colorful.Color
	SegmentColor colorful.Color
	RectColor    colorful.Color
	GridColor    colorful.Color
}

// DefaultOverlayOptions returns options with the standard palette.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		BoundsColor:  colorful.Color{R: 0, G: 0.6, B: 0},
		SegmentColor: colorful.Color{R: 0, G: 0.4, B: 1},
		RectColor:    colorful.Color{R: 1, G: 0, B: 0},
		GridColor:    colorful.Color{R: 0.8, G: 0.8, B: 0.8},
	}
}

// ParseColor accepts "#RRGGBB" and falls back to def for anything else.
func ParseColor(hex string, def colorful.Color) colorful.Color {
	if hex == "" {
		return def
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return def
	}
	return c
}

// OverlayResult contains the annotated image.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Rectangles  int    `json:"rectangles"`
	Segments    int    `json:"segments"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Overlay renders opts over img and encodes the result.
func Overlay(img image.Image, opts OverlayOptions) (*OverlayResult, error) {
	result := RenderOverlay(img, opts)

	data, err := EncodePNGBase64(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &OverlayResult{
		Width:       result.Bounds().Dx(),
		Height:      result.Bounds().Dy(),
		Rectangles:  len(opts.Rects),
		Segments:    len(opts.Segments),
		ImageBase64: data,
		MimeType:    PNGMimeType,
	}, nil
}

// RenderOverlay draws opts over a copy of img. The copy starts at 0,0 so all
// coordinates are relative to the top-left pixel.
func RenderOverlay(img image.Image, opts OverlayOptions) *image.RGBA {
	src := img.Bounds()
	width, height := src.Dx(), src.Dy()

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, src.Min, draw.Src)

	if opts.GridSpacing > 0 {
		for x := opts.GridSpacing; x < width; x += opts.GridSpacing {
			drawSegment(result, Segment{X1: x, Y1: 0, X2: x, Y2: height - 1}, opts.GridColor)
		}
		for y := opts.GridSpacing; y < height; y += opts.GridSpacing {
			drawSegment(result, Segment{X1: 0, Y1: y, X2: width - 1, Y2: y}, opts.GridColor)
		}
	}

	if opts.PlanBounds != nil {
		drawRect(result, opts.PlanBounds.Rect(), opts.BoundsColor)
	}

	for _, s := range opts.Segments {
		drawSegment(result, s, opts.SegmentColor)
	}

	labelColor := color.RGBA{255, 255, 255, 255}
	labelBg := color.RGBA{0, 0, 0, 180}
	for i, r := range opts.Rects {
		drawRect(result, r, opts.RectColor)
		if opts.NumberRects {
			drawLabel(result, r.Min.X+2, r.Min.Y+2, fmt.Sprintf("%d", i+1), labelColor, labelBg)
		}
	}

	return result
}

// drawRect outlines r. Max is treated as inclusive so the outline sits on the
// detected line positions.
func drawRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	drawSegment(img, Segment{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Min.Y}, c)
	drawSegment(img, Segment{X1: r.Min.X, Y1: r.Max.Y, X2: r.Max.X, Y2: r.Max.Y}, c)
	drawSegment(img, Segment{X1: r.Min.X, Y1: r.Min.Y, X2: r.Min.X, Y2: r.Max.Y}, c)
	drawSegment(img, Segment{X1: r.Max.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}, c)
}

// drawSegment plots s by stepping along its longer axis. Pixels outside the
// image are skipped.
func drawSegment(img *image.RGBA, s Segment, c color.Color) {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	steps := max(abs(dx), abs(dy))
	bounds := img.Bounds()

	for i := 0; i <= steps; i++ {
		x, y := s.X1, s.Y1
		if steps > 0 {
			x = s.X1 + (dx*i+sign(dx)*steps/2)/steps
			y = s.Y1 + (dy*i+sign(dy)*steps/2)/steps
		}
		if image.Pt(x, y).In(bounds) {
			img.Set(x, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// drawLabel draws a simple digit label at the given position
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	// Simple 3x5 pixel font for digits
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
