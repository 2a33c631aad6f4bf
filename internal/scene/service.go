package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
)

// SnapDistance is how close a new wall endpoint must be to an existing one to
// be replaced by it.
const SnapDistance = 10.0

var (
	// ErrNilObject is returned when an operation is given a nil object.
	ErrNilObject = errors.New("object is nil")
	// ErrObjectNotFound is returned for objects the scene does not own.
	ErrObjectNotFound = errors.New("object not found in scene")
	// ErrWallNotFound is returned for walls the scene does not own.
	ErrWallNotFound = errors.New("wall not found in scene")
	// ErrAlreadyConverted is returned when a detection was converted before.
	ErrAlreadyConverted = errors.New("detection already converted")
)

// Observer is called once after every mutation. Observers re-read whatever
// state they need; no change details are passed.
type Observer func()

// Service owns the walls, rooms and placed objects of one floor plan. All
// operations run under a single mutex; observers are called after it is
// released, so they may call back into the service.
type Service struct {
	mu         sync.Mutex
	walls      []*floorplan.Wall
	rooms      []*floorplan.Room
	objects    []*floorplan.PlacedObject
	index      *objectIndex
	scaleX     float64
	scaleY     float64
	background string

	observers map[int]Observer
	nextObs   int

	now func() time.Time
}

// NewService returns an empty scene with unit scale.
func NewService() *Service {
	return &Service{
		index:     newObjectIndex(),
		scaleX:    1,
		scaleY:    1,
		observers: make(map[int]Observer),
		now:       time.Now,
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Service) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// unlockAndNotify releases the lock and then calls every observer once.
func (s *Service) unlockAndNotify() {
	obs := make([]Observer, 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			obs = append(obs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range obs {
		fn()
	}
}

// snap returns the first existing wall endpoint closer than SnapDistance to p,
// checking each wall's start before its end, or p itself.
func (s *Service) snap(p floorplan.Point) floorplan.Point {
	for _, w := range s.walls {
		if p.DistanceTo(w.Start) < SnapDistance {
			return w.Start
		}
		if p.DistanceTo(w.End) < SnapDistance {
			return w.End
		}
	}
	return p
}

// addWallLocked snaps, validates and appends a wall without re-deriving rooms.
func (s *Service) addWallLocked(start, end floorplan.Point) (*floorplan.Wall, error) {
	w := floorplan.NewWall(s.snap(start), s.snap(end))
	if w.IsDegenerate() {
		return nil, fmt.Errorf("add wall %s-%s: %w", w.Start, w.End, floorplan.ErrDegenerateWall)
	}
	s.walls = append(s.walls, w)
	return w, nil
}

func (s *Service) deriveRooms() {
	s.rooms = floorplan.DeriveRooms(s.walls)
}

// AddWall snaps both endpoints to nearby existing endpoints, appends the wall
// and re-derives rooms. A wall whose snapped endpoints coincide is rejected.
func (s *Service) AddWall(start, end floorplan.Point) (*floorplan.Wall, error) {
	s.mu.Lock()
	w, err := s.addWallLocked(start, end)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.deriveRooms()
	s.unlockAndNotify()
	return w, nil
}

// RemoveWall deletes w and re-derives rooms.
func (s *Service) RemoveWall(w *floorplan.Wall) error {
	if w == nil {
		return ErrNilObject
	}

	s.mu.Lock()
	i := s.wallIndex(w)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("remove wall %s: %w", w.ID, ErrWallNotFound)
	}
	s.walls = append(s.walls[:i], s.walls[i+1:]...)
	s.deriveRooms()
	s.unlockAndNotify()
	return nil
}

// SetWallRealLength records the physical length of w in inches. A
// non-positive value clears the override.
func (s *Service) SetWallRealLength(w *floorplan.Wall, inches float64) error {
	if w == nil {
		return ErrNilObject
	}

	s.mu.Lock()
	if s.wallIndex(w) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("set wall length %s: %w", w.ID, ErrWallNotFound)
	}
	if inches > 0 {
		w.RealLengthInInches = &inches
	} else {
		w.RealLengthInInches = nil
	}
	s.unlockAndNotify()
	return nil
}

func (s *Service) wallIndex(w *floorplan.Wall) int {
	for i, x := range s.walls {
		if x == w {
			return i
		}
	}
	return -1
}

func (s *Service) objectIndexOf(o *floorplan.PlacedObject) int {
	for i, x := range s.objects {
		if x == o {
			return i
		}
	}
	return -1
}

// AddObject places a fixture of type t with its default dimensions.
func (s *Service) AddObject(t floorplan.ObjectType, pos floorplan.Point) (*floorplan.PlacedObject, error) {
	s.mu.Lock()
	obj, err := floorplan.NewPlacedObject(t, pos, s.now())
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("add object: %w", err)
	}
	s.appendObject(obj)
	s.unlockAndNotify()
	return obj, nil
}

func (s *Service) appendObject(obj *floorplan.PlacedObject) {
	s.objects = append(s.objects, obj)
	s.index.insert(obj)
}

// RemoveObject deletes obj from the scene.
func (s *Service) RemoveObject(obj *floorplan.PlacedObject) error {
	if obj == nil {
		return ErrNilObject
	}

	s.mu.Lock()
	i := s.objectIndexOf(obj)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("remove object %s: %w", obj.ID, ErrObjectNotFound)
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	s.index.remove(obj)
	s.unlockAndNotify()
	return nil
}

// MoveObject sets a new top-left position for obj. Z-order is unchanged.
func (s *Service) MoveObject(obj *floorplan.PlacedObject, pos floorplan.Point) error {
	if obj == nil {
		return ErrNilObject
	}

	s.mu.Lock()
	if s.objectIndexOf(obj) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("move object %s: %w", obj.ID, ErrObjectNotFound)
	}
	obj.MoveTo(pos, s.now())
	s.index.refresh(obj)
	s.unlockAndNotify()
	return nil
}

// UpdateObject replaces height, layer count and orientation. Rotation becomes
// 0 for horizontal objects and 90 otherwise.
func (s *Service) UpdateObject(obj *floorplan.PlacedObject, height float64, layers int, horizontal bool) error {
	if obj == nil {
		return ErrNilObject
	}

	s.mu.Lock()
	if s.objectIndexOf(obj) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update object %s: %w", obj.ID, ErrObjectNotFound)
	}
	obj.UpdateProperties(height, layers, horizontal, s.now())
	s.index.refresh(obj)
	s.unlockAndNotify()
	return nil
}

// ObjectAt returns the topmost object whose bounding box contains p, or nil.
// Later-placed objects are on top.
func (s *Service) ObjectAt(p floorplan.Point) *floorplan.PlacedObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.at(p)
}

// SetScale sets both axes to u. Non-positive values become 1.
func (s *Service) SetScale(u float64) {
	s.SetScaleXY(u, u)
}

// SetScaleXY sets the per-axis scale. Non-positive values become 1.
func (s *Service) SetScaleXY(x, y float64) {
	s.mu.Lock()
	s.setScaleLocked(x, y)
	s.unlockAndNotify()
}

func (s *Service) setScaleLocked(x, y float64) {
	s.scaleX = clampScale(x)
	s.scaleY = clampScale(y)
}

func clampScale(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// SetBackgroundImage records the path of the plan image drawn under the scene.
func (s *Service) SetBackgroundImage(path string) {
	s.mu.Lock()
	s.background = path
	s.unlockAndNotify()
}

// Clear removes everything and resets the scale to 1.
func (s *Service) Clear() {
	s.mu.Lock()
	s.walls = nil
	s.rooms = nil
	s.objects = nil
	s.index = newObjectIndex()
	s.background = ""
	s.setScaleLocked(1, 1)
	s.unlockAndNotify()
}

// Walls returns the walls in insertion order.
func (s *Service) Walls() []*floorplan.Wall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*floorplan.Wall(nil), s.walls...)
}

// Rooms returns the rooms derived from the current walls.
func (s *Service) Rooms() []*floorplan.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*floorplan.Room(nil), s.rooms...)
}

// Objects returns the placed objects bottom to top.
func (s *Service) Objects() []*floorplan.PlacedObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*floorplan.PlacedObject(nil), s.objects...)
}

// WallByID looks up a wall.
func (s *Service) WallByID(id string) (*floorplan.Wall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.walls {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// ObjectByID looks up a placed object.
func (s *Service) ObjectByID(id string) (*floorplan.PlacedObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Scale is the mean of the two axis scales.
func (s *Service) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (s.scaleX + s.scaleY) / 2
}

// ScaleXY returns the per-axis scale.
func (s *Service) ScaleXY() (x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scaleX, s.scaleY
}

// BackgroundImage returns the recorded plan image path.
func (s *Service) BackgroundImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}
