package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// drawOutline draws a rectangle outline of the given stroke width. The corners
// are inclusive pixel positions.
func drawOutline(img *image.RGBA, x1, y1, x2, y2, stroke int, c color.Color) {
	for s := 0; s < stroke; s++ {
		for x := x1; x <= x2; x++ {
			img.Set(x, y1+s, c)
			img.Set(x, y2-s, c)
		}
		for y := y1; y <= y2; y++ {
			img.Set(x1+s, y, c)
			img.Set(x2-s, y, c)
		}
	}
}

func TestFindPlanBounds_Blank(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	if _, ok := FindPlanBounds(img); ok {
		t.Error("blank image should report not found")
	}
}

func TestFindPlanBounds_Outline(t *testing.T) {
	img := createTestImage(200, 160, color.White)
	drawOutline(img, 20, 30, 179, 129, 2, color.Black)

	b, ok := FindPlanBounds(img)
	if !ok {
		t.Fatal("plan bounds not found")
	}

	want := imaging.Bounds{Left: 22, Top: 32, Right: 177, Bottom: 127}
	if b != want {
		t.Errorf("bounds: got %v, want %v", b, want)
	}
}

func TestFindPlanBounds_IgnoresLightSpeckle(t *testing.T) {
	img := createTestImage(200, 160, color.White)
	drawOutline(img, 20, 30, 179, 129, 2, color.Black)

	// Light enough for pass 1 but not for pass 2
	speckle := color.RGBA{190, 190, 190, 255}
	img.Set(5, 5, speckle)
	img.Set(195, 150, speckle)

	b, ok := FindPlanBounds(img)
	if !ok {
		t.Fatal("plan bounds not found")
	}

	want := imaging.Bounds{Left: 22, Top: 32, Right: 177, Bottom: 127}
	if b != want {
		t.Errorf("bounds: got %v, want %v", b, want)
	}
}

func TestFindPlanBounds_NoStrokeKeepsLooseBox(t *testing.T) {
	img := createTestImage(100, 80, color.White)
	// Ink, but never dark enough to count as a boundary stroke
	gray := color.RGBA{190, 190, 190, 255}
	for y := 10; y <= 69; y++ {
		for x := 10; x <= 89; x++ {
			img.Set(x, y, gray)
		}
	}

	b, ok := FindPlanBounds(img)
	if !ok {
		t.Fatal("plan bounds not found")
	}
	want := imaging.Bounds{Left: 12, Top: 12, Right: 87, Bottom: 67}
	if b != want {
		t.Errorf("bounds: got %v, want %v", b, want)
	}
}

func TestFindPlanBounds_CollapsedBox(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	for y := 50; y < 53; y++ {
		for x := 50; x < 53; x++ {
			img.Set(x, y, color.Black)
		}
	}

	if b, ok := FindPlanBounds(img); ok {
		t.Errorf("3x3 blob should collapse after inset, got %v", b)
	}
}

func TestFindPlanBounds_ClampedToImage(t *testing.T) {
	img := createTestImage(50, 40, color.White)
	drawOutline(img, 0, 0, 49, 39, 1, color.Black)

	b, ok := FindPlanBounds(img)
	if !ok {
		t.Fatal("plan bounds not found")
	}
	want := imaging.Bounds{Left: 2, Top: 2, Right: 47, Bottom: 37}
	if b != want {
		t.Errorf("bounds: got %v, want %v", b, want)
	}
}
