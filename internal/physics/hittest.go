package physics

import rl "github.com/gen2brain/raylib-go/raylib"

const edgeEpsilon = 1e-4

// Inside reports whether the projection of p along the face normal falls
// within the triangle. Either winding is accepted, and points within
// edgeEpsilon of an edge count as inside.
func Inside(f *CollisionFace, p rl.Vector3) bool {
	a, b := 0, 0
	for i := 0; i < 3; i++ {
		dist := rl.Vector3DotProduct(rl.Vector3Subtract(p, f.Verts[i]), f.Edges[i])
		if dist > -edgeEpsilon {
			a++
		}
		if dist < edgeEpsilon {
			b++
		}
	}
	return a == 3 || b == 3
}

// HitTest checks a sphere against a face. On contact it returns the vector
// from the nearest point of the face to center; its length is the distance
// to the surface and its direction is the push-out direction.
func HitTest(f *CollisionFace, center rl.Vector3, radius float32) (rl.Vector3, bool) {
	distPlane := rl.Vector3DotProduct(rl.Vector3Subtract(center, f.Verts[0]), f.Normal)
	if abs(distPlane) > radius {
		return rl.Vector3{}, false
	}

	a, b := 0, 0
	nearest := radius * radius
	found := false
	var contact rl.Vector3

	for i := 0; i < 3; i++ {
		rel := rl.Vector3Subtract(center, f.Verts[i])
		distEdge := rl.Vector3DotProduct(rel, f.Edges[i])
		if distEdge > -edgeEpsilon {
			a++
		}
		if distEdge < edgeEpsilon {
			b++
		}
		if abs(distEdge) >= radius {
			continue
		}

		// Close to this edge; find the nearest point on the segment.
		edge := rl.Vector3Subtract(f.Verts[(i+1)%3], f.Verts[i])
		x := clamp(rl.Vector3DotProduct(rel, edge)/rl.Vector3DotProduct(edge, edge), 0, 1)
		delta := rl.Vector3Subtract(center, rl.Vector3Add(f.Verts[i], rl.Vector3Scale(edge, x)))
		if d := rl.Vector3DotProduct(delta, delta); d < nearest {
			nearest = d
			contact = delta
			found = true
		}
	}

	if a == 3 || b == 3 {
		return rl.Vector3Scale(f.Normal, distPlane), true
	}
	return contact, found
}
