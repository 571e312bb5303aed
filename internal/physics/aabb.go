package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// EmptyAABB returns an inverted box that any Extend call replaces.
func EmptyAABB() AABB {
	return AABB{
		Min: rl.Vector3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32},
		Max: rl.Vector3{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32},
	}
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// IsEmpty is true for a box that has never been extended.
func (a AABB) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Extend grows the box to contain p.
func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: vector3Min(a.Min, p), Max: vector3Max(a.Max, p)}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside the box or on its boundary.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// SegmentBounds returns the box spanned by the segment from origin to
// origin + dir*dist.
func SegmentBounds(origin, dir rl.Vector3, dist float32) AABB {
	end := rl.Vector3Add(origin, rl.Vector3Scale(dir, dist))
	return AABB{Min: vector3Min(origin, end), Max: vector3Max(origin, end)}
}

// Corner returns the corner of the box that lies furthest along normal.
func (a AABB) Corner(normal rl.Vector3) rl.Vector3 {
	p := a.Min
	if normal.X > 0 {
		p.X = a.Max.X
	}
	if normal.Y > 0 {
		p.Y = a.Max.Y
	}
	if normal.Z > 0 {
		p.Z = a.Max.Z
	}
	return p
}

// Split cuts the box with an axis-aligned plane and returns the part below
// and the part above it. Each half is clamped to the plane exactly.
func (a AABB) Split(p Plane) (below, above AABB) {
	below, above = a, a
	below.Max = rl.Vector3Add(below.Max,
		rl.Vector3Scale(p.Normal, p.Offset-rl.Vector3DotProduct(p.Normal, a.Max)))
	above.Min = rl.Vector3Add(above.Min,
		rl.Vector3Scale(p.Normal, p.Offset-rl.Vector3DotProduct(p.Normal, a.Min)))
	return below, above
}
