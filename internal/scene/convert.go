package scene

import (
	"fmt"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
)

// ConvertDetection turns a detected candidate into a placed object with the
// given properties and links the two. A detection converts at most once.
func (s *Service) ConvertDetection(d *floorplan.DetectedObject, props floorplan.ConversionProps) (*floorplan.PlacedObject, error) {
	if d == nil {
		return nil, ErrNilObject
	}

	s.mu.Lock()
	obj, err := s.convertLocked(d, props)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.unlockAndNotify()
	return obj, nil
}

// ConvertAll converts every unconverted detection in ds with its default
// properties. Already converted detections are skipped. Observers are
// notified once if anything was converted, even when a later conversion
// fails.
func (s *Service) ConvertAll(ds []*floorplan.DetectedObject) ([]*floorplan.PlacedObject, error) {
	s.mu.Lock()
	created := make([]*floorplan.PlacedObject, 0, len(ds))
	var err error
	for _, d := range ds {
		if d == nil || d.Converted() {
			continue
		}
		obj, cerr := s.convertLocked(d, d.DefaultConversionProps())
		if cerr != nil {
			err = cerr
			break
		}
		created = append(created, obj)
	}
	if len(created) == 0 {
		s.mu.Unlock()
		return created, err
	}
	s.unlockAndNotify()
	return created, err
}

func (s *Service) convertLocked(d *floorplan.DetectedObject, props floorplan.ConversionProps) (*floorplan.PlacedObject, error) {
	if d.Converted() {
		return nil, fmt.Errorf("convert %s: %w", d.ID, ErrAlreadyConverted)
	}
	obj, err := d.ToPlacedObject(props, s.now())
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", d.ID, err)
	}
	s.appendObject(obj)
	d.PlacedObjectID = obj.ID
	return obj, nil
}
