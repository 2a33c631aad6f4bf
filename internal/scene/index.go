package scene

import (
	"github.com/dhconnelly/rtreego"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
)

// queryTolerance widens a hit-test point into a small box so that points on
// an object's edge still intersect it in the tree.
const queryTolerance = 0.5

// minExtent keeps zero-sized objects indexable; rtreego rejects empty rects.
const minExtent = 1e-6

// indexEntry is an object's slot in the R-tree. The rect is captured at
// insertion because the tree locates entries for deletion by their bounds.
type indexEntry struct {
	obj  *floorplan.PlacedObject
	seq  uint64
	rect rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// objectIndex answers hit tests over placed objects. seq records insertion
// order so the topmost object can be picked among overlapping candidates.
type objectIndex struct {
	tree    *rtreego.Rtree
	entries map[*floorplan.PlacedObject]*indexEntry
	nextSeq uint64
}

func newObjectIndex() *objectIndex {
	return &objectIndex{
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make(map[*floorplan.PlacedObject]*indexEntry),
	}
}

func objectRect(o *floorplan.PlacedObject) rtreego.Rect {
	b := o.BoundingBox()
	rect, err := rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{max(b.Max[0]-b.Min[0], minExtent), max(b.Max[1]-b.Min[1], minExtent)},
	)
	if err != nil {
		// Lengths are always positive here.
		panic(err)
	}
	return rect
}

func (ix *objectIndex) insert(o *floorplan.PlacedObject) {
	e := &indexEntry{obj: o, seq: ix.nextSeq, rect: objectRect(o)}
	ix.nextSeq++
	ix.entries[o] = e
	ix.tree.Insert(e)
}

// refresh re-indexes o after its position or footprint changed, keeping its
// z-order.
func (ix *objectIndex) refresh(o *floorplan.PlacedObject) {
	e, ok := ix.entries[o]
	if !ok {
		return
	}
	ix.tree.Delete(e)
	e.rect = objectRect(o)
	ix.tree.Insert(e)
}

func (ix *objectIndex) remove(o *floorplan.PlacedObject) {
	e, ok := ix.entries[o]
	if !ok {
		return
	}
	ix.tree.Delete(e)
	delete(ix.entries, o)
}

// at returns the most recently inserted object whose bounding box contains p.
func (ix *objectIndex) at(p floorplan.Point) *floorplan.PlacedObject {
	var best *indexEntry
	for _, s := range ix.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(queryTolerance)) {
		e := s.(*indexEntry)
		if !e.obj.Contains(p) {
			continue
		}
		if best == nil || e.seq > best.seq {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	return best.obj
}

func (ix *objectIndex) len() int {
	return ix.tree.Size()
}
