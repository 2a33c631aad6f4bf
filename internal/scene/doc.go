// Package scene holds the editable floor plan: walls, the rooms derived from
// them, and placed fixtures.
//
// Service is the single owner of that state. Every mutation runs under one
// mutex, re-derives rooms when walls change, and then notifies subscribed
// observers exactly once. Observers receive no details; they read whatever
// they need through the accessors or Snapshot.
//
// Hit testing for ObjectAt uses an R-tree over object bounding boxes, with
// insertion order deciding which of several overlapping objects is on top.
package scene
