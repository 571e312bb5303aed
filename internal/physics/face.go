package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// CollisionFace is a triangle prepared for point and sphere queries. Edges
// hold, for every edge i (Verts[i] -> Verts[i+1]), the unit tangent
// cross(Normal, edge) which lies in the face plane and points into the face.
type CollisionFace struct {
	Verts  [3]rl.Vector3
	Edges  [3]rl.Vector3
	Normal rl.Vector3
}

// FaceSet is a set of faces keyed by identity. Faces live in baked, never
// resized slices so their addresses are stable for the life of the owner.
type FaceSet map[*CollisionFace]struct{}

func (s FaceSet) Add(f *CollisionFace) {
	s[f] = struct{}{}
}

func (s FaceSet) Has(f *CollisionFace) bool {
	_, ok := s[f]
	return ok
}

// BakeFace recomputes the normal of the triangle a, b, c and its edge
// tangents. It returns false for triangles whose area is too small to give a
// usable normal.
func BakeFace(a, b, c rl.Vector3) (CollisionFace, bool) {
	n := cross(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
	if rl.Vector3Length(n) < 1e-6 {
		return CollisionFace{}, false
	}

	f := CollisionFace{
		Verts:  [3]rl.Vector3{a, b, c},
		Normal: Normalize(n),
	}
	for i := 0; i < 3; i++ {
		d := rl.Vector3Subtract(f.Verts[(i+1)%3], f.Verts[i])
		f.Edges[i] = Normalize(cross(f.Normal, d))
	}
	return f, true
}

// Centroid returns the average of the three vertices.
func (f *CollisionFace) Centroid() rl.Vector3 {
	sum := rl.Vector3Add(rl.Vector3Add(f.Verts[0], f.Verts[1]), f.Verts[2])
	return rl.Vector3Scale(sum, 1.0/3.0)
}

// Bounds returns the box around the three vertices.
func (f *CollisionFace) Bounds() AABB {
	return EmptyAABB().Extend(f.Verts[0]).Extend(f.Verts[1]).Extend(f.Verts[2])
}
