package detection

import (
	"fmt"
	"log"

	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
)

// Config holds the tunable heuristics of plan analysis. The defaults are
// empirical values that work for typical retail plan scans; they are not
// derived from any geometric property.
type Config struct {
	// EdgeThreshold is the gradient magnitude above which a pixel is an edge.
	EdgeThreshold float64

	// MinRunLength is the number of consecutive edge pixels a run must exceed
	// to become a raw line segment.
	MinRunLength int

	// MergeDistance merges segments whose constant coordinates differ by less.
	MergeDistance float64

	// MinSeparation and MaxSeparation bound the distance between the two
	// lines of a rectangle side pair, inclusive.
	MinSeparation float64
	MaxSeparation float64

	// CornerTolerance is the slack allowed when checking that a vertical line
	// crosses a horizontal line's span and vice versa.
	CornerTolerance float64

	// DuplicateOverlap drops a candidate whose intersection with an accepted
	// rectangle exceeds this fraction of the smaller area.
	DuplicateOverlap float64

	// Confidence is attached to every accepted rectangle.
	Confidence float64

	// Logger receives progress messages. Nil disables logging.
	Logger *log.Logger
}

// DefaultConfig returns the standard heuristics.
func DefaultConfig() Config {
	return Config{
		EdgeThreshold:    imaging.DefaultEdgeThreshold,
		MinRunLength:     30,
		MergeDistance:    5,
		MinSeparation:    20,
		MaxSeparation:    300,
		CornerTolerance:  10,
		DuplicateOverlap: 0.7,
		Confidence:       DefaultConfidence,
	}
}

// Validate rejects settings that would make analysis meaningless.
func (c Config) Validate() error {
	switch {
	case c.EdgeThreshold <= 0:
		return fmt.Errorf("edge threshold must be positive, got %v", c.EdgeThreshold)
	case c.MinRunLength < 1:
		return fmt.Errorf("min run length must be >= 1, got %d", c.MinRunLength)
	case c.MergeDistance < 0:
		return fmt.Errorf("merge distance must be >= 0, got %v", c.MergeDistance)
	case c.MinSeparation < 0 || c.MaxSeparation < c.MinSeparation:
		return fmt.Errorf("separation range [%v, %v] is invalid", c.MinSeparation, c.MaxSeparation)
	case c.CornerTolerance < 0:
		return fmt.Errorf("corner tolerance must be >= 0, got %v", c.CornerTolerance)
	case c.DuplicateOverlap <= 0 || c.DuplicateOverlap > 1:
		return fmt.Errorf("duplicate overlap must be in (0, 1], got %v", c.DuplicateOverlap)
	}
	return nil
}

func (c Config) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
