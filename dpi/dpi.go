// Package dpi holds the geometry types shared by the window engine: logical
// and physical sizes and points, and the WindowInfo record that keeps the two
// reconciled through a scale factor.
//
// The invariant maintained everywhere is physical = logical * scale, with
// rounding to the nearest integer pixel.
package dpi

import "math"

// Size is a window size in logical (scale-independent) pixels.
type Size struct {
	Width  float64
	Height float64
}

// NewSize returns a logical size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Point is a position in logical pixels.
type Point struct {
	X float64
	Y float64
}

// PhySize is a window size in physical (device) pixels.
type PhySize struct {
	Width  uint32
	Height uint32
}

// NewPhySize returns a physical size.
func NewPhySize(width, height uint32) PhySize {
	return PhySize{Width: width, Height: height}
}

// PhyPoint is a position in physical pixels, as reported by the native layer.
type PhyPoint struct {
	X int32
	Y int32
}

// ToLogical converts the physical point into logical space using the scale
// factor currently held by info.
func (p PhyPoint) ToLogical(info WindowInfo) Point {
	return Point{
		X: float64(p.X) / info.Scale(),
		Y: float64(p.Y) / info.Scale(),
	}
}

// WindowInfo carries the reconciled window geometry: logical size, physical
// size and the scale factor relating the two. It is derived data; construct
// it through FromLogicalSize or FromPhysicalSize whenever either side of the
// relation changes.
type WindowInfo struct {
	logical  Size
	physical PhySize
	scale    float64
}

// FromLogicalSize computes a WindowInfo from a logical size and scale factor,
// rounding the physical size to the nearest integer pixel.
func FromLogicalSize(size Size, scale float64) WindowInfo {
	return WindowInfo{
		logical: size,
		physical: PhySize{
			Width:  uint32(math.Round(size.Width * scale)),
			Height: uint32(math.Round(size.Height * scale)),
		},
		scale: scale,
	}
}

// FromPhysicalSize computes a WindowInfo from a physical size and scale
// factor.
func FromPhysicalSize(size PhySize, scale float64) WindowInfo {
	return WindowInfo{
		logical: Size{
			Width:  float64(size.Width) / scale,
			Height: float64(size.Height) / scale,
		},
		physical: size,
		scale:    scale,
	}
}

// LogicalSize returns the window size in logical pixels.
func (w WindowInfo) LogicalSize() Size { return w.logical }

// PhysicalSize returns the window size in physical pixels.
func (w WindowInfo) PhysicalSize() PhySize { return w.physical }

// Scale returns the scale factor relating logical to physical pixels.
func (w WindowInfo) Scale() float64 { return w.scale }
