package floorplan

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimension is returned for dimensions outside the accepted ranges.
var ErrInvalidDimension = errors.New("invalid dimension")

// InchesPerFoot is used for all feet/inch conversions.
const InchesPerFoot = 12

// Dimension is a real-world length entered as feet plus inches.
type Dimension struct {
	Feet   int `json:"feet"`
	Inches int `json:"inches"`
}

// Validate checks Feet >= 0 and Inches in [0, 11].
func (d Dimension) Validate() error {
	if d.Feet < 0 {
		return fmt.Errorf("%w: feet must be >= 0, got %d", ErrInvalidDimension, d.Feet)
	}
	if d.Inches < 0 || d.Inches >= InchesPerFoot {
		return fmt.Errorf("%w: inches must be in [0,11], got %d", ErrInvalidDimension, d.Inches)
	}
	return nil
}

// TotalInches returns Feet*12 + Inches.
func (d Dimension) TotalInches() float64 {
	return float64(d.Feet*InchesPerFoot + d.Inches)
}

// ParseDimension validates d and returns its length in inches. A zero length
// is rejected since it cannot be used as a scale reference.
func ParseDimension(d Dimension) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	total := d.TotalInches()
	if total <= 0 {
		return 0, fmt.Errorf("%w: length must be greater than zero", ErrInvalidDimension)
	}
	return total, nil
}

// ScaleFor returns the drawing-units-per-inch factor for a drawn span that
// represents realInches in the real world.
func ScaleFor(drawnSpan, realInches float64) (float64, error) {
	if drawnSpan <= 0 || realInches <= 0 {
		return 0, fmt.Errorf("%w: span %.2f and real length %.2f must be positive",
			ErrInvalidDimension, drawnSpan, realInches)
	}
	return drawnSpan / realInches, nil
}

// FormatFeetInches renders a length in inches as 12'-6".
func FormatFeetInches(inches float64) string {
	feet := int(inches / InchesPerFoot)
	rest := int(math.Mod(inches, InchesPerFoot))
	return fmt.Sprintf("%d'-%d\"", feet, rest)
}
