// Package imaging provides the raster side of floor-plan analysis.
//
// It decodes scanned plans, converts them to a luminance grid, computes the
// binary edge mask used by line extraction, and renders PNG previews (crops,
// edge masks and annotated overlays) for transport.
//
// # Coordinate System
//
// All pixel coordinates are 0-based from the top-left pixel of the image,
// regardless of the origin reported by the decoder:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Bounds are Left/Top inclusive and Right/Bottom exclusive for scans
//
// # Luminance
//
// Luminance is the integer mean of the red, green and blue channels, so the
// fixed thresholds used by plan detection (200, 180 and the edge threshold of
// 30) apply to values in 0..255.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Luma and EdgeMask values are not
// modified after construction and may be shared between goroutines.
package imaging
