package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Plane is the set of points p with dot(p, Normal) == Offset. Normal is unit
// length; the positive half-space is the side Normal points to.
type Plane struct {
	Normal rl.Vector3
	Offset float32
}

// NewPlane returns the plane through point with the given normal.
func NewPlane(normal, point rl.Vector3) Plane {
	return Plane{Normal: normal, Offset: rl.Vector3DotProduct(point, normal)}
}

// Distance is the signed distance from p to the plane.
func (p Plane) Distance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(point, p.Normal) - p.Offset
}

// Above reports whether point lies strictly on the positive side.
func (p Plane) Above(point rl.Vector3) bool {
	return rl.Vector3DotProduct(point, p.Normal) > p.Offset
}

// Side returns 1 when point is above the plane and 0 otherwise. It is the
// child index a BSP node stores point in.
func (p Plane) Side(point rl.Vector3) int {
	if p.Above(point) {
		return 1
	}
	return 0
}

// RejectsBox is the conservative half-space test used for culling: the box
// is outside when even its corner furthest along Normal is below the plane.
func (p Plane) RejectsBox(b AABB) bool {
	return rl.Vector3DotProduct(b.Corner(p.Normal), p.Normal) < p.Offset
}

// RejectsSphere reports whether a sphere lies entirely below the plane.
func (p Plane) RejectsSphere(center rl.Vector3, radius float32) bool {
	return rl.Vector3DotProduct(center, p.Normal) < p.Offset-radius
}
