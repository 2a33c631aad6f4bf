// Package detection turns a scanned floor plan into candidate fixtures.
//
// The analysis chain is:
//
//  1. Plan bounds: a two-threshold, two-pass search for the rectangle that
//     holds the drawing, inset past its boundary stroke
//  2. Edge mask: a single-tap gradient over the plan interior (see imaging)
//  3. Lines: runs of edge pixels on every other row and column, merged by
//     their constant coordinate
//  4. Rectangles: pairs of horizontal and vertical lines whose corners meet,
//     with near-duplicates dropped
//  5. Classification: a coarse fixture type from rectangle size and aspect
//
// Analysis never fails. A blank or unreadable image produces an Analysis with
// Found false and no objects; callers treat zero results as a valid outcome.
//
// # Heuristics
//
// Run length, merge distance, separation range, corner tolerance and the
// duplicate overlap ratio are empirical. They live in Config so they can be
// tuned per scanner without code changes.
//
// # Concurrency
//
// Analyze only reads its input and returns a fresh result. Runner executes
// one analysis at a time on a worker goroutine so the request loop stays
// responsive; results are applied to the scene by the caller.
package detection
