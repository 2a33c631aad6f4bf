package floorplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// DetectedObject is a fixture candidate produced by image analysis. It is
// replaced on every analysis run and converts into a PlacedObject at most once.
type DetectedObject struct {
	ID         string     `json:"id"`
	Bounds     orb.Bound  `json:"bounds"`
	Type       ObjectType `json:"type"`
	Confidence float64    `json:"confidence"`

	// PlacedObjectID refers to the object created from this candidate. It is
	// a lookup key into the scene, empty until conversion.
	PlacedObjectID string `json:"placed_object_id,omitempty"`
}

// NewDetectedObject wraps a candidate rectangle.
func NewDetectedObject(bounds orb.Bound, t ObjectType, confidence float64) *DetectedObject {
	return &DetectedObject{
		ID:         uuid.NewString(),
		Bounds:     bounds,
		Type:       t,
		Confidence: confidence,
	}
}

// Converted reports whether a PlacedObject has been created from d.
func (d *DetectedObject) Converted() bool {
	return d.PlacedObjectID != ""
}

// Width is the horizontal extent of the candidate rectangle.
func (d *DetectedObject) Width() float64 {
	return d.Bounds.Max[0] - d.Bounds.Min[0]
}

// Height is the vertical extent of the candidate rectangle.
func (d *DetectedObject) Height() float64 {
	return d.Bounds.Max[1] - d.Bounds.Min[1]
}

// ConversionProps are the user-confirmed properties applied when a candidate
// becomes a PlacedObject.
type ConversionProps struct {
	Width        float64
	Length       float64
	Height       float64
	Layers       int
	Horizontal   bool
	Temperature  float64
	CategoryCode string
}

// DefaultConversionProps takes width and length from the candidate rectangle
// and everything else from the type defaults.
func (d *DetectedObject) DefaultConversionProps() ConversionProps {
	def, _ := DefaultsFor(d.Type)
	props := ConversionProps{
		Width:        d.Width(),
		Length:       d.Height(),
		Height:       def.Height,
		Layers:       def.Layers,
		Horizontal:   true,
		CategoryCode: DefaultCategoryCode,
	}
	if def.Temperature != nil {
		props.Temperature = *def.Temperature
	}
	return props
}

// ToPlacedObject builds the fixture for d at the candidate's top-left corner.
// Temperature is only kept for refrigerated types. It does not mark d as
// converted.
func (d *DetectedObject) ToPlacedObject(props ConversionProps, now time.Time) (*PlacedObject, error) {
	obj, err := NewPlacedObject(d.Type, Point{X: d.Bounds.Min[0], Y: d.Bounds.Min[1]}, now)
	if err != nil {
		return nil, err
	}
	obj.Width = props.Width
	obj.Length = props.Length
	obj.Height = props.Height
	obj.Layers = props.Layers
	obj.setHorizontal(props.Horizontal)
	if props.CategoryCode != "" {
		obj.CategoryCode = props.CategoryCode
	}
	if d.Type.IsRefrigerated() {
		obj.Temperature = celsius(props.Temperature)
	} else {
		obj.Temperature = nil
	}
	return obj, nil
}
