package detection

import "github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"

// DefaultConfidence is reported for every accepted rectangle. The classifier
// only labels rectangles, it never rejects one.
const DefaultConfidence = 0.8

// Classification cutoffs, in square drawing units and width/height ratios.
const (
	pillarMaxArea   = 1000
	elongatedRatio  = 2.5
	narrowRatio     = 0.4
	displayMinArea  = 3000
	checkoutMinArea = 6000
	fridgeMinArea   = 3000
)

// Classify guesses a fixture type from a rectangle's size.
//
//	area < 1000                  pillar
//	ratio > 2.5 or ratio < 0.4   display-stand if area > 3000, else shelf
//	area > 6000                  checkout
//	area > 3000                  refrigerator
//	otherwise                    shelf
func Classify(width, height float64) floorplan.ObjectType {
	area := width * height
	if area < pillarMaxArea {
		return floorplan.Pillar
	}

	ratio := width / height
	switch {
	case ratio > elongatedRatio || ratio < narrowRatio:
		if area > displayMinArea {
			return floorplan.DisplayStand
		}
		return floorplan.Shelf
	case area > checkoutMinArea:
		return floorplan.Checkout
	case area > fridgeMinArea:
		return floorplan.Refrigerator
	}
	return floorplan.Shelf
}
