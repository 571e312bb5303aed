package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// parallelEpsilon rejects rays that run (almost) along the face plane.
const parallelEpsilon = 1e-8

// RaycastFace intersects the ray origin + dir*t with the face. Distances are
// in multiples of dir. Only hits with 0 <= t < maxDist are reported.
func RaycastFace(f *CollisionFace, origin, dir rl.Vector3, maxDist float32) (float32, bool) {
	div := rl.Vector3DotProduct(f.Normal, dir)
	if abs(div) < parallelEpsilon {
		return 0, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(f.Verts[0], origin), f.Normal) / div
	if t < 0 || t >= maxDist {
		return 0, false
	}
	if !Inside(f, rl.Vector3Add(origin, rl.Vector3Scale(dir, t))) {
		return 0, false
	}
	return t, true
}

// RaycastFaces tests every face and shrinks *dist to the closest hit. It
// returns the face that was hit, or nil.
func RaycastFaces(faces []CollisionFace, origin, dir rl.Vector3, dist *float32) *CollisionFace {
	var hit *CollisionFace
	for i := range faces {
		if t, ok := RaycastFace(&faces[i], origin, dir, *dist); ok {
			*dist = t
			hit = &faces[i]
		}
	}
	return hit
}
