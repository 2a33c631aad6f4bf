package detection

import (
	"math"
	"sort"

	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
)

// AxisLine is an axis-aligned segment. For a horizontal line Pos is y and
// Start/End are x; for a vertical line Pos is x and Start/End are y.
type AxisLine struct {
	Pos   float64 `json:"pos"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Length is End - Start.
func (l AxisLine) Length() float64 {
	return l.End - l.Start
}

// ExtractLines finds merged horizontal and vertical lines in the edge mask.
//
// Every other row (column) inside b is walked in order. A run of consecutive
// edge pixels longer than cfg.MinRunLength becomes a raw segment ending at the
// last edge pixel; a run still open at the far side of b ends at Right-1
// (Bottom-1). Raw segments are then merged with MergeLines.
func ExtractLines(mask *imaging.EdgeMask, b imaging.Bounds, cfg Config) (horizontal, vertical []AxisLine) {
	rawH := scanRuns(b.Top, b.Bottom, b.Left, b.Right, cfg.MinRunLength, func(row, i int) bool {
		return mask.At(i, row)
	})
	rawV := scanRuns(b.Left, b.Right, b.Top, b.Bottom, cfg.MinRunLength, func(col, i int) bool {
		return mask.At(col, i)
	})

	horizontal = MergeLines(rawH, cfg.MergeDistance)
	vertical = MergeLines(rawV, cfg.MergeDistance)

	cfg.logf("lines: %d raw horizontal -> %d, %d raw vertical -> %d",
		len(rawH), len(horizontal), len(rawV), len(vertical))
	return horizontal, vertical
}

// scanRuns walks lines lineFrom, lineFrom+2, ... < lineTo and, along each, the
// positions from..to-1.
func scanRuns(lineFrom, lineTo, from, to, minRun int, edge func(line, i int) bool) []AxisLine {
	segments := make([]AxisLine, 0)

	for line := lineFrom; line < lineTo; line += 2 {
		start := -1
		run := 0

		for i := from; i < to; i++ {
			if edge(line, i) {
				if start == -1 {
					start = i
				}
				run++
				continue
			}
			if run > minRun {
				segments = append(segments, AxisLine{Pos: float64(line), Start: float64(start), End: float64(i - 1)})
			}
			start = -1
			run = 0
		}

		if run > minRun {
			segments = append(segments, AxisLine{Pos: float64(line), Start: float64(start), End: float64(to - 1)})
		}
	}

	return segments
}

// MergeLines collapses segments whose constant coordinates are close.
//
// Segments are stably sorted by Pos. Each group starts at the first unmerged
// segment and absorbs the following segments whose Pos differs from the
// group's first segment by less than distance. The merged line has the running
// average of the absorbed Pos values and the min/max of their extents.
func MergeLines(lines []AxisLine, distance float64) []AxisLine {
	sorted := make([]AxisLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos < sorted[j].Pos
	})

	merged := make([]AxisLine, 0, len(sorted))
	for i := 0; i < len(sorted); i++ {
		first := sorted[i]
		avg, lo, hi := first.Pos, first.Start, first.End
		count := 1.0

		for i+1 < len(sorted) && math.Abs(sorted[i+1].Pos-first.Pos) < distance {
			i++
			avg = (avg*count + sorted[i].Pos) / (count + 1)
			lo = math.Min(lo, sorted[i].Start)
			hi = math.Max(hi, sorted[i].End)
			count++
		}

		merged = append(merged, AxisLine{Pos: avg, Start: lo, End: hi})
	}

	return merged
}
