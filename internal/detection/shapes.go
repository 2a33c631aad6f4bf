package detection

import (
	"math"

	"github.com/paulmach/orb"
)

// AssembleRectangles pairs merged lines into candidate fixture rectangles.
//
// For every pair (i < j) of horizontal lines whose separation lies in
// [MinSeparation, MaxSeparation], and every such pair (k < l) of vertical
// lines, the four lines form a rectangle when each vertical line falls within
// both horizontal spans and each horizontal line falls within both vertical
// spans, all with CornerTolerance slack. The rectangle starts at the first
// vertical line's x and the first horizontal line's y. A candidate is dropped
// when it overlaps an accepted rectangle by more than DuplicateOverlap of the
// smaller area.
func AssembleRectangles(horizontal, vertical []AxisLine, cfg Config) []orb.Bound {
	rects := make([]orb.Bound, 0)

	for i := 0; i < len(horizontal)-1; i++ {
		for j := i + 1; j < len(horizontal); j++ {
			top, bottom := horizontal[i], horizontal[j]
			vDist := math.Abs(bottom.Pos - top.Pos)
			if vDist < cfg.MinSeparation || vDist > cfg.MaxSeparation {
				continue
			}

			for k := 0; k < len(vertical)-1; k++ {
				for l := k + 1; l < len(vertical); l++ {
					left, right := vertical[k], vertical[l]
					hDist := math.Abs(right.Pos - left.Pos)
					if hDist < cfg.MinSeparation || hDist > cfg.MaxSeparation {
						continue
					}

					if !formsRectangle(top, bottom, left, right, cfg.CornerTolerance) {
						continue
					}

					rect := orb.Bound{
						Min: orb.Point{left.Pos, top.Pos},
						Max: orb.Point{left.Pos + hDist, top.Pos + vDist},
					}
					if !overlapsAny(rect, rects, cfg.DuplicateOverlap) {
						rects = append(rects, rect)
					}
				}
			}
		}
	}

	cfg.logf("rectangles: %d from %d horizontal x %d vertical lines",
		len(rects), len(horizontal), len(vertical))
	return rects
}

// formsRectangle runs the four corner checks.
func formsRectangle(top, bottom, left, right AxisLine, tol float64) bool {
	return crosses(top, left, tol) && crosses(top, right, tol) &&
		crosses(bottom, left, tol) && crosses(bottom, right, tol)
}

// crosses reports whether v's x lies within h's span and h's y lies within
// v's span, each widened by tol.
func crosses(h, v AxisLine, tol float64) bool {
	return v.Pos >= h.Start-tol && v.Pos <= h.End+tol &&
		h.Pos >= v.Start-tol && h.Pos <= v.End+tol
}

// overlapsAny reports whether r intersects any accepted rectangle by more than
// threshold of the smaller of the two areas.
func overlapsAny(r orb.Bound, accepted []orb.Bound, threshold float64) bool {
	for _, a := range accepted {
		if !r.Intersects(a) {
			continue
		}
		smaller := math.Min(boundArea(r), boundArea(a))
		if smaller <= 0 {
			continue
		}
		if intersectionArea(r, a)/smaller > threshold {
			return true
		}
	}
	return false
}

func boundArea(b orb.Bound) float64 {
	return (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1])
}

func intersectionArea(a, b orb.Bound) float64 {
	w := math.Min(a.Max[0], b.Max[0]) - math.Max(a.Min[0], b.Min[0])
	h := math.Min(a.Max[1], b.Max[1]) - math.Max(a.Min[1], b.Min[1])
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}
