package assets

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/physics"
)

type Vertex struct {
	Pos      rl.Vector3
	Normal   rl.Vector3
	TexCoord rl.Vector2
}

// Triangle is one face of a triangle soup with the material it is drawn with.
type Triangle struct {
	Verts    [3]Vertex
	Material *Material
}

func (t *Triangle) Invisible() bool {
	return t.Material != nil && t.Material.Invisible()
}

// Group holds the vertices drawn with one material and the middle of their
// bounding box.
type Group struct {
	Material *Material
	Vertices []Vertex
	Midpos   rl.Vector3
}

// LightAnchor is a point where an emissive group of a model casts light.
type LightAnchor struct {
	Pos      rl.Vector3
	Material *Material
}

// Model is a baked triangle mesh. Visible faces are kept for ray tests and
// grouped by material; collision-only faces are kept apart.
type Model struct {
	Name           string
	Faces          []physics.CollisionFace
	CollisionFaces []physics.CollisionFace
	Groups         []Group

	midpos rl.Vector3
	radius float32
}

// NewModel bakes a triangle list. Degenerate triangles are logged and
// skipped.
func NewModel(name string, tris []Triangle) *Model {
	m := &Model{Name: name}

	box := physics.EmptyAABB()
	groupIndex := map[*Material]int{}

	for i := range tris {
		t := &tris[i]
		face, ok := physics.BakeFace(t.Verts[0].Pos, t.Verts[1].Pos, t.Verts[2].Pos)
		if !ok {
			logs.Warn(errors.New("skipping degenerate face").
				WithTag("model", name).
				WithTag("face", i))
			continue
		}
		if t.Invisible() {
			m.CollisionFaces = append(m.CollisionFaces, face)
			continue
		}
		m.Faces = append(m.Faces, face)

		gi, ok := groupIndex[t.Material]
		if !ok {
			gi = len(m.Groups)
			groupIndex[t.Material] = gi
			m.Groups = append(m.Groups, Group{Material: t.Material})
		}
		for _, v := range t.Verts {
			m.Groups[gi].Vertices = append(m.Groups[gi].Vertices, v)
			box = box.Extend(v.Pos)
		}
	}

	if len(m.Faces) == 0 {
		return m
	}

	m.midpos = box.Center()
	var r2 float32
	for i := range m.Faces {
		for _, v := range m.Faces[i].Verts {
			d := rl.Vector3Subtract(v, m.midpos)
			if l := rl.Vector3DotProduct(d, d); l > r2 {
				r2 = l
			}
		}
	}
	m.radius = float32(math.Sqrt(float64(r2)))

	for gi := range m.Groups {
		g := &m.Groups[gi]
		gbox := physics.EmptyAABB()
		for _, v := range g.Vertices {
			gbox = gbox.Extend(v.Pos)
		}
		g.Midpos = gbox.Center()
	}
	return m
}

// Midpos is the center of the bounding box of the visible faces.
func (m *Model) Midpos() rl.Vector3 {
	return m.midpos
}

// Radius is the distance from Midpos to the furthest visible vertex.
func (m *Model) Radius() float32 {
	return m.radius
}

// Loaded reports whether the model has anything to draw.
func (m *Model) Loaded() bool {
	return len(m.Faces) > 0
}

// Raytrace tests the ray origin + dir*t against the visible faces and shrinks
// *dist on a hit closer than *dist.
func (m *Model) Raytrace(origin, dir rl.Vector3, dist *float32) bool {
	return physics.RaycastFaces(m.Faces, origin, dir, dist) != nil
}

// Lights returns one anchor per emissive material group.
func (m *Model) Lights() []LightAnchor {
	var lights []LightAnchor
	for _, g := range m.Groups {
		if g.Material != nil && g.Material.Emissive() {
			lights = append(lights, LightAnchor{Pos: g.Midpos, Material: g.Material})
		}
	}
	return lights
}
