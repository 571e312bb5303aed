package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
	"spatial3d/internal/engine"
)

var (
	stone = &assets.Material{Name: "stone", Color: rl.Gray}
	glass = &assets.Material{Name: "glass", Color: rl.Blank}
	lamp  = &assets.Material{Name: "lamp", Color: rl.White, Brightness: 0.4, LightColor: rl.Yellow}
)

func quad(m *assets.Material, a, b, c, d rl.Vector3) []assets.Triangle {
	return []assets.Triangle{
		{Verts: [3]assets.Vertex{{Pos: a}, {Pos: b}, {Pos: c}}, Material: m},
		{Verts: [3]assets.Vertex{{Pos: a}, {Pos: c}, {Pos: d}}, Material: m},
	}
}

// floorQuad is a horizontal square at height y.
func floorQuad(m *assets.Material, half, y float32) []assets.Triangle {
	return quad(m,
		rl.Vector3{X: -half, Y: y, Z: -half},
		rl.Vector3{X: half, Y: y, Z: -half},
		rl.Vector3{X: half, Y: y, Z: half},
		rl.Vector3{X: -half, Y: y, Z: half},
	)
}

// box returns the six sides of the cube [-half, half]^3.
func box(m *assets.Material, half float32) []assets.Triangle {
	h := half
	p := func(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x * h, Y: y * h, Z: z * h} }

	var tris []assets.Triangle
	tris = append(tris, quad(m, p(-1, -1, -1), p(1, -1, -1), p(1, -1, 1), p(-1, -1, 1))...)
	tris = append(tris, quad(m, p(-1, 1, -1), p(-1, 1, 1), p(1, 1, 1), p(1, 1, -1))...)
	tris = append(tris, quad(m, p(-1, -1, -1), p(-1, 1, -1), p(1, 1, -1), p(1, -1, -1))...)
	tris = append(tris, quad(m, p(-1, -1, 1), p(1, -1, 1), p(1, 1, 1), p(-1, 1, 1))...)
	tris = append(tris, quad(m, p(-1, -1, -1), p(-1, -1, 1), p(-1, 1, 1), p(-1, 1, -1))...)
	tris = append(tris, quad(m, p(1, -1, -1), p(1, 1, -1), p(1, 1, 1), p(1, -1, 1))...)
	return tris
}

func testConfig(depth int) Config {
	cfg := DefaultConfig()
	cfg.MaxDepth = depth
	return cfg
}

// panelModel is a 2x2 square in the XY plane centered at the origin.
func panelModel() *assets.Model {
	return assets.NewModel("panel", quad(stone,
		rl.Vector3{X: -1, Y: -1},
		rl.Vector3{X: 1, Y: -1},
		rl.Vector3{X: 1, Y: 1},
		rl.Vector3{X: -1, Y: 1},
	))
}

func spawnPanel(t *Tree, name string, pos rl.Vector3) *engine.Entity {
	e := engine.NewEntity(name)
	e.SetModel(panelModel(), rl.Vector3{})
	e.Move(pos)
	e.SetWorld(t)
	return e
}

// membership counts, per leaf, how often e is listed.
func membership(t *Tree, e *engine.Entity) []int {
	counts := make([]int, len(t.Leaves()))
	for i, l := range t.Leaves() {
		for _, other := range l.Entities() {
			if other == e {
				counts[i]++
			}
		}
	}
	return counts
}

func sum(counts []int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
