package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
	"spatial3d/internal/physics"
)

// fakeWorld is a flat WorldAccess that checks faces by brute force.
type fakeWorld struct {
	faces    []physics.CollisionFace
	entities map[*Entity]int
	lights   map[*Light]int
	ops      []string
}

func newFakeWorld(faces ...physics.CollisionFace) *fakeWorld {
	return &fakeWorld{
		faces:    faces,
		entities: make(map[*Entity]int),
		lights:   make(map[*Light]int),
	}
}

func (w *fakeWorld) RegisterEntity(e *Entity, pos rl.Vector3, radius float32) {
	if radius <= 0 {
		panic("non-positive radius")
	}
	w.entities[e]++
	w.ops = append(w.ops, "register")
}

func (w *fakeWorld) UnregisterEntity(e *Entity, pos rl.Vector3, radius float32) {
	if w.entities[e] == 0 {
		panic("entity not registered")
	}
	w.entities[e]--
	w.ops = append(w.ops, "unregister")
}

func (w *fakeWorld) RegisterLight(l *Light) {
	w.lights[l]++
}

func (w *fakeWorld) UnregisterLight(l *Light) {
	if w.lights[l] == 0 {
		panic("light not registered")
	}
	w.lights[l]--
}

func (w *fakeWorld) registeredLights() int {
	n := 0
	for _, c := range w.lights {
		n += c
	}
	return n
}

func (w *fakeWorld) FindCollisions(pos rl.Vector3, radius float32, ignore physics.FaceSet) []*physics.CollisionFace {
	var faces []*physics.CollisionFace
	for i := range w.faces {
		f := &w.faces[i]
		if ignore.Has(f) {
			continue
		}
		if _, ok := physics.HitTest(f, pos, radius); ok {
			faces = append(faces, f)
		}
	}
	return faces
}

// quadFaces returns the two faces of the quad a, b, c, d.
func quadFaces(a, b, c, d rl.Vector3) []physics.CollisionFace {
	f1, _ := physics.BakeFace(a, b, c)
	f2, _ := physics.BakeFace(a, c, d)
	return []physics.CollisionFace{f1, f2}
}

func quadTriangles(m *assets.Material, a, b, c, d rl.Vector3) []assets.Triangle {
	return []assets.Triangle{
		{Verts: [3]assets.Vertex{{Pos: a}, {Pos: b}, {Pos: c}}, Material: m},
		{Verts: [3]assets.Vertex{{Pos: a}, {Pos: c}, {Pos: d}}, Material: m},
	}
}

// panelModel is a 2x2 square in the XY plane centered at the origin.
func panelModel(m *assets.Material) *assets.Model {
	return assets.NewModel("panel", quadTriangles(m,
		rl.Vector3{X: -1, Y: -1},
		rl.Vector3{X: 1, Y: -1},
		rl.Vector3{X: 1, Y: 1},
		rl.Vector3{X: -1, Y: 1},
	))
}
