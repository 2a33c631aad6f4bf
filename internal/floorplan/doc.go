// Package floorplan holds the geometric scene model of a traced store floor plan.
//
// The model is made of four kinds of values:
//   - Point: a 2D coordinate in drawing units (1 unit = 1 inch)
//   - Wall: a straight segment between two points with a thickness
//   - Room: a closed cycle of walls with a derived floor area
//   - PlacedObject: a typed store fixture (shelf, refrigerator, ...)
//
// DetectedObject values are produced by the detection package and converted
// into PlacedObjects on request.
//
// # Coordinate System
//
// Coordinates follow the image convention: origin at top-left, X increases
// rightward, Y increases downward.
//
// # Tolerances
//
// Point equality is tolerance based: two points are equal when both coordinate
// deltas are below one unit. Walls are connected when any pair of endpoints is
// closer than ConnectTolerance. These tolerances let independently computed
// wall endpoints be treated as the same corner.
//
// # Rooms
//
// Rooms are never edited directly. DeriveRooms rebuilds them from a wall list
// and is called by the scene package after every wall mutation.
package floorplan
