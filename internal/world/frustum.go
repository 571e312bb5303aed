package world

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/physics"
)

// Frustum is a view volume bounded by four side planes through the eye and
// a far plane. There is no near plane. Plane normals point inwards.
type Frustum struct {
	Position rl.Vector3
	planes   [5]physics.Plane // left, right, bottom, top, far
}

// NewFrustum builds a frustum at pos looking along forward. tanX and tanY
// are the tangents of half the horizontal and vertical field of view.
func NewFrustum(pos, forward, up rl.Vector3, tanX, tanY, far float32) Frustum {
	forward = physics.Normalize(forward)
	right := physics.Normalize(rl.Vector3CrossProduct(forward, up))
	up = rl.Vector3CrossProduct(right, forward)

	f := Frustum{Position: pos}
	normals := [5]rl.Vector3{
		physics.Normalize(rl.Vector3Add(rl.Vector3Scale(forward, tanX), right)),
		physics.Normalize(rl.Vector3Subtract(rl.Vector3Scale(forward, tanX), right)),
		physics.Normalize(rl.Vector3Add(rl.Vector3Scale(forward, tanY), up)),
		physics.Normalize(rl.Vector3Subtract(rl.Vector3Scale(forward, tanY), up)),
		rl.Vector3Negate(forward),
	}
	for i, n := range normals {
		f.planes[i] = physics.NewPlane(n, pos)
	}
	f.planes[4].Offset -= far
	return f
}

// ExtractFrustum builds the frustum of a perspective camera. aspect is the
// viewport width divided by its height.
func ExtractFrustum(camera rl.Camera3D, aspect, far float32) Frustum {
	tanY := float32(math.Tan(float64(camera.Fovy*rl.Deg2rad) / 2))
	forward := rl.Vector3Subtract(camera.Target, camera.Position)
	return NewFrustum(camera.Position, forward, camera.Up, tanY*aspect, tanY, far)
}

func (f *Frustum) Planes() [5]physics.Plane {
	return f.planes
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].RejectsSphere(center, radius) {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := range f.planes {
		if f.planes[i].Distance(point) < 0 {
			return false
		}
	}
	return true
}

// ContainsBox reports whether a box may be inside the frustum. It is
// conservative: some boxes outside near the frustum edges pass.
func (f *Frustum) ContainsBox(b physics.AABB) bool {
	for i := range f.planes {
		if f.planes[i].RejectsBox(b) {
			return false
		}
	}
	return true
}
