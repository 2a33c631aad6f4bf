package floorplan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
)

// ErrUnknownObjectType is returned when a type name does not match any fixture.
var ErrUnknownObjectType = errors.New("unknown object type")

// DefaultCategoryCode is assigned to every new fixture.
const DefaultCategoryCode = "GEN"

// ObjectType identifies a fixture kind.
type ObjectType string

// Fixture kinds.
const (
	Shelf        ObjectType = "shelf"
	Refrigerator ObjectType = "refrigerator"
	Freezer      ObjectType = "freezer"
	Checkout     ObjectType = "checkout"
	DisplayStand ObjectType = "display-stand"
	Pillar       ObjectType = "pillar"
)

// ObjectTypes lists every fixture kind in display order.
var ObjectTypes = []ObjectType{Shelf, Refrigerator, Freezer, Checkout, DisplayStand, Pillar}

func (t ObjectType) String() string {
	return string(t)
}

// ParseObjectType converts a type name into an ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	t := ObjectType(s)
	if _, ok := fixtureDefaults[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownObjectType, s)
	}
	return t, nil
}

// FixtureDefaults holds the construction-time values of a fixture kind.
type FixtureDefaults struct {
	DisplayName     string
	Width           float64
	Length          float64
	Height          float64
	Layers          int
	Temperature     *float64
	Fill            colorful.Color
	HasLayerSupport bool
	ModelBasePath   string
	ShelfModelPath  string
}

func celsius(v float64) *float64 { return &v }

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var fixtureDefaults = map[ObjectType]FixtureDefaults{
	Shelf: {
		DisplayName: "Shelf",
		Width:       48, Length: 18, Height: 72, Layers: 3,
		Fill:            mustHex("#8B4513"),
		HasLayerSupport: true,
		ModelBasePath:   "Models/Shelf/shelf_frame.obj",
		ShelfModelPath:  "Models/Shelf/shelf_layer.obj",
	},
	Refrigerator: {
		DisplayName: "Refrigerator",
		Width:       36, Length: 24, Height: 84, Layers: 2,
		Temperature:     celsius(4),
		Fill:            mustHex("#C8C8FF"),
		HasLayerSupport: true,
		ModelBasePath:   "Models/Refrigerator/fridge_frame.obj",
		ShelfModelPath:  "Models/Refrigerator/fridge_shelf.obj",
	},
	Freezer: {
		DisplayName: "Freezer",
		Width:       36, Length: 24, Height: 84, Layers: 3,
		Temperature:     celsius(-18),
		Fill:            mustHex("#96C8FF"),
		HasLayerSupport: true,
		ModelBasePath:   "Models/Freezer/freezer_frame.obj",
		ShelfModelPath:  "Models/Freezer/freezer_shelf.obj",
	},
	Checkout: {
		DisplayName: "Checkout",
		Width:       48, Length: 36, Height: 36, Layers: 1,
		Fill:          mustHex("#C0C0C0"),
		ModelBasePath: "Models/Checkout/checkout.obj",
	},
	DisplayStand: {
		DisplayName: "Display Stand",
		Width:       60, Length: 30, Height: 48, Layers: 2,
		Fill:            mustHex("#FFE4C4"),
		HasLayerSupport: true,
		ModelBasePath:   "Models/DisplayStand/display_frame.obj",
		ShelfModelPath:  "Models/DisplayStand/display_shelf.obj",
	},
	Pillar: {
		DisplayName: "Pillar",
		Width:       12, Length: 12, Height: 96, Layers: 1,
		Fill:          mustHex("#808080"),
		ModelBasePath: "Models/Pillar/pillar.obj",
	},
}

// DefaultsFor returns a copy of the defaults for t. The Temperature pointer
// is copied too, so callers cannot alter the table.
func DefaultsFor(t ObjectType) (FixtureDefaults, bool) {
	d, ok := fixtureDefaults[t]
	if !ok {
		return FixtureDefaults{}, false
	}
	if d.Temperature != nil {
		d.Temperature = celsius(*d.Temperature)
	}
	return d, true
}

// IsRefrigerated reports whether t carries a temperature setting.
func (t ObjectType) IsRefrigerated() bool {
	return t == Refrigerator || t == Freezer
}

// PlacedObject is a fixture positioned in the scene.
type PlacedObject struct {
	ID           string     `json:"id"`
	Type         ObjectType `json:"type"`
	Position     Point      `json:"position"`
	Width        float64    `json:"width"`
	Length       float64    `json:"length"`
	Height       float64    `json:"height"`
	Rotation     float64    `json:"rotation"`
	Layers       int        `json:"layers"`
	Horizontal   bool       `json:"horizontal"`
	Temperature  *float64   `json:"temperature,omitempty"`
	CategoryCode string     `json:"category_code"`
	CreatedAt    time.Time  `json:"created_at"`
	ModifiedAt   time.Time  `json:"modified_at"`
}

// NewPlacedObject creates a horizontal fixture of type t at pos with the
// type's default dimensions.
func NewPlacedObject(t ObjectType, pos Point, now time.Time) (*PlacedObject, error) {
	d, ok := DefaultsFor(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, string(t))
	}
	return &PlacedObject{
		ID:           uuid.NewString(),
		Type:         t,
		Position:     pos,
		Width:        d.Width,
		Length:       d.Length,
		Height:       d.Height,
		Layers:       d.Layers,
		Horizontal:   true,
		Temperature:  d.Temperature,
		CategoryCode: DefaultCategoryCode,
		CreatedAt:    now,
		ModifiedAt:   now,
	}, nil
}

// footprint returns the extents along x and y for the current orientation.
func (o *PlacedObject) footprint() (float64, float64) {
	if o.Horizontal {
		return o.Width, o.Length
	}
	return o.Length, o.Width
}

// BoundingBox is the axis-aligned box from Position spanning the footprint.
func (o *PlacedObject) BoundingBox() orb.Bound {
	dx, dy := o.footprint()
	return orb.Bound{
		Min: orb.Point{o.Position.X, o.Position.Y},
		Max: orb.Point{o.Position.X + dx, o.Position.Y + dy},
	}
}

// Contains reports whether p lies in the bounding box, edges included.
func (o *PlacedObject) Contains(p Point) bool {
	return o.BoundingBox().Contains(p.Orb())
}

// Center returns the middle of the bounding box.
func (o *PlacedObject) Center() Point {
	dx, dy := o.footprint()
	return Point{X: o.Position.X + dx/2, Y: o.Position.Y + dy/2}
}

// MoveTo sets a new top-left position.
func (o *PlacedObject) MoveTo(p Point, now time.Time) {
	o.Position = p
	o.ModifiedAt = now
}

// Rotate toggles the orientation by 90 degrees.
func (o *PlacedObject) Rotate(now time.Time) {
	o.setHorizontal(!o.Horizontal)
	o.ModifiedAt = now
}

// UpdateProperties replaces height, layer count and orientation.
func (o *PlacedObject) UpdateProperties(height float64, layers int, horizontal bool, now time.Time) {
	o.Height = height
	o.Layers = layers
	o.setHorizontal(horizontal)
	o.ModifiedAt = now
}

func (o *PlacedObject) setHorizontal(h bool) {
	o.Horizontal = h
	if h {
		o.Rotation = 0
	} else {
		o.Rotation = 90
	}
}

// LayerHeight is the height of one shelving tier.
func (o *PlacedObject) LayerHeight() float64 {
	if o.Layers <= 0 {
		return o.Height
	}
	return o.Height / float64(o.Layers)
}

// LayerZ returns the floor offset of tier i, or 0 for an index out of range.
func (o *PlacedObject) LayerZ(i int) float64 {
	if i < 0 || i >= o.Layers {
		return 0
	}
	return float64(i) * o.LayerHeight()
}

// DisplayName is the human label of the fixture kind.
func (o *PlacedObject) DisplayName() string {
	if d, ok := fixtureDefaults[o.Type]; ok {
		return d.DisplayName
	}
	return "Object"
}

func (o *PlacedObject) String() string {
	orientation := "horizontal"
	if !o.Horizontal {
		orientation = "vertical"
	}
	return fmt.Sprintf("%s at %s, %.0fx%.0fx%.0f, %d layers, %s",
		o.DisplayName(), o.Position, o.Width, o.Length, o.Height, o.Layers, orientation)
}
