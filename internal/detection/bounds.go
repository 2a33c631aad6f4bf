package detection

import (
	"image"

	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
)

// Plan boundary heuristics.
const (
	// inkLuma marks any pixel that belongs to the drawing at all.
	inkLuma = 200
	// strokeLuma marks pixels dark enough to be part of a boundary stroke.
	strokeLuma = 180
	// strokeFraction of a row or column must be stroke pixels to be a boundary.
	strokeFraction = 0.3
	// boundsInset pulls every side in past the boundary stroke itself.
	boundsInset = 2
)

// FindPlanBounds locates the rectangular region of img that holds the drawn
// plan. It reports false for a blank image or when the refined box collapses.
func FindPlanBounds(img image.Image) (imaging.Bounds, bool) {
	return PlanBounds(imaging.NewLuma(img))
}

// PlanBounds is FindPlanBounds on an already converted image.
//
// Pass 1 takes the loose box of every pixel darker than 200. Pass 2 sweeps
// each side inward within that loose box and stops at the first column (row)
// where more than 30% of the loose height (width) is darker than 180; a side
// with no such column (row) keeps its loose value. The sides are refined
// independently, then inset by 2 and clamped to the image.
func PlanBounds(l *imaging.Luma) (imaging.Bounds, bool) {
	minX, minY := l.Width, l.Height
	maxX, maxY := -1, -1

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.At(x, y) < inkLuma {
				minX = min(minX, x)
				maxX = max(maxX, x)
				minY = min(minY, y)
				maxY = max(maxY, y)
			}
		}
	}
	if maxX < 0 {
		return imaging.Bounds{}, false
	}

	colLimit := float64(maxY-minY) * strokeFraction
	rowLimit := float64(maxX-minX) * strokeFraction

	columnIsStroke := func(x int) bool {
		n := 0
		for y := minY; y <= maxY; y++ {
			if l.At(x, y) < strokeLuma {
				n++
			}
		}
		return float64(n) > colLimit
	}
	rowIsStroke := func(y int) bool {
		n := 0
		for x := minX; x <= maxX; x++ {
			if l.At(x, y) < strokeLuma {
				n++
			}
		}
		return float64(n) > rowLimit
	}

	left, right, top, bottom := minX, maxX, minY, maxY
	for x := minX; x <= maxX; x++ {
		if columnIsStroke(x) {
			left = x
			break
		}
	}
	for x := maxX; x >= minX; x-- {
		if columnIsStroke(x) {
			right = x
			break
		}
	}
	for y := minY; y <= maxY; y++ {
		if rowIsStroke(y) {
			top = y
			break
		}
	}
	for y := maxY; y >= minY; y-- {
		if rowIsStroke(y) {
			bottom = y
			break
		}
	}

	b := imaging.Bounds{
		Left:   left + boundsInset,
		Top:    top + boundsInset,
		Right:  right - boundsInset,
		Bottom: bottom - boundsInset,
	}.ClampTo(l.Width, l.Height)

	if b.Empty() {
		return imaging.Bounds{}, false
	}
	return b, true
}
