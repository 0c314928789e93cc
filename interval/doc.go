// Package interval defines PosType, the reference-coordinate type
// shared by circular's read-id bitmaps and variants/tracer's local
// assembly windows. It assumes every position fits in a PosType,
// currently int32.
package interval
