package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
	"spatial3d/internal/physics"
)

// splitTriangles clips tris against p and returns the pieces on one side:
// side 1 is above the plane, side 0 is on or below it. Edges crossing the
// plane get an interpolated vertex and the resulting polygon is fanned back
// into triangles. A vertex lying on the plane belongs to both sides, except
// that a triangle lying entirely in the plane goes to side 0 only.
func splitTriangles(tris []assets.Triangle, p physics.Plane, side int) []assets.Triangle {
	var out []assets.Triangle
	points := make([]assets.Vertex, 0, 4)

	for i := range tris {
		tri := &tris[i]
		points = points[:0]

		var dist [3]float32
		coplanar := true
		for j, v := range tri.Verts {
			dist[j] = rl.Vector3DotProduct(v.Pos, p.Normal) - p.Offset
			coplanar = coplanar && dist[j] == 0
		}
		if coplanar {
			if side == 0 {
				out = append(out, *tri)
			}
			continue
		}

		for j := 0; j < 3; j++ {
			a := tri.Verts[j]
			b := tri.Verts[(j+1)%3]
			d1, d2 := dist[j], dist[(j+1)%3]

			if d1 == 0 || p.Side(a.Pos) == side {
				points = append(points, a)
			}
			if d1*d2 < 0 {
				points = append(points, lerpVertex(a, b, d1/(d1-d2)))
			}
		}

		for j := 2; j < len(points); j++ {
			out = append(out, assets.Triangle{
				Verts:    [3]assets.Vertex{points[0], points[j-1], points[j]},
				Material: tri.Material,
			})
		}
	}
	return out
}

func lerpVertex(a, b assets.Vertex, x float32) assets.Vertex {
	return assets.Vertex{
		Pos:      rl.Vector3Lerp(a.Pos, b.Pos, x),
		Normal:   rl.Vector3Lerp(a.Normal, b.Normal, x),
		TexCoord: rl.Vector2Lerp(a.TexCoord, b.TexCoord, x),
	}
}
