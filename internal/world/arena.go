package world

import (
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
)

// ArenaOptions shapes a generated level.
type ArenaOptions struct {
	Name string

	// Size is the half extent of the floor.
	Size   float32
	Height float32

	// Pillars is the number of pillars along each side of the pillar grid.
	Pillars int
	Crates  int
	Seed    uint64
}

func DefaultArenaOptions() ArenaOptions {
	return ArenaOptions{
		Name:    "arena",
		Size:    40,
		Height:  20,
		Pillars: 4,
		Crates:  16,
		Seed:    1,
	}
}

// GenerateArena builds a walled room with a grid of pillars, a lamp above
// every pillar and crates scattered in the air. The materials and the crate
// model are added to lib.
func GenerateArena(lib *assets.Library, opts ArenaOptions) *Level {
	floor := &assets.Material{Name: "arena_floor", Color: rl.Gray}
	wall := &assets.Material{Name: "arena_wall", Color: rl.LightGray}
	lamp := &assets.Material{Name: "arena_lamp", Color: rl.White, Brightness: 0.2, LightColor: rl.Yellow}
	barrier := &assets.Material{Name: InvisibleWallMaterial, Color: rl.Blank}
	for _, m := range []*assets.Material{floor, wall, lamp, barrier} {
		lib.AddMaterial(m)
	}

	s, h := opts.Size, opts.Height
	var tris []assets.Triangle
	tris = append(tris, quadTriangles(floor,
		rl.Vector3{X: -s, Z: -s},
		rl.Vector3{X: -s, Z: s},
		rl.Vector3{X: s, Z: s},
		rl.Vector3{X: s, Z: -s},
	)...)
	tris = append(tris, quadTriangles(wall, rl.Vector3{X: -s, Z: -s}, rl.Vector3{X: s, Z: -s}, rl.Vector3{X: s, Y: h, Z: -s}, rl.Vector3{X: -s, Y: h, Z: -s})...)
	tris = append(tris, quadTriangles(wall, rl.Vector3{X: s, Z: s}, rl.Vector3{X: -s, Z: s}, rl.Vector3{X: -s, Y: h, Z: s}, rl.Vector3{X: s, Y: h, Z: s})...)
	tris = append(tris, quadTriangles(wall, rl.Vector3{X: -s, Z: s}, rl.Vector3{X: -s, Z: -s}, rl.Vector3{X: -s, Y: h, Z: -s}, rl.Vector3{X: -s, Y: h, Z: s})...)
	tris = append(tris, quadTriangles(wall, rl.Vector3{X: s, Z: -s}, rl.Vector3{X: s, Z: s}, rl.Vector3{X: s, Y: h, Z: s}, rl.Vector3{X: s, Y: h, Z: -s})...)

	// The ceiling only blocks movement.
	tris = append(tris, quadTriangles(barrier,
		rl.Vector3{X: -s, Y: h, Z: -s},
		rl.Vector3{X: s, Y: h, Z: -s},
		rl.Vector3{X: s, Y: h, Z: s},
		rl.Vector3{X: -s, Y: h, Z: s},
	)...)

	if opts.Pillars > 0 {
		step := 2 * s / float32(opts.Pillars+1)
		for i := 1; i <= opts.Pillars; i++ {
			for j := 1; j <= opts.Pillars; j++ {
				x := -s + float32(i)*step
				z := -s + float32(j)*step
				tris = append(tris, cuboid(wall,
					rl.Vector3{X: x - 1, Z: z - 1},
					rl.Vector3{X: x + 1, Y: h / 2, Z: z + 1},
				)...)
				tris = append(tris, quadTriangles(lamp,
					rl.Vector3{X: x - 0.5, Y: h - 0.5, Z: z - 0.5},
					rl.Vector3{X: x + 0.5, Y: h - 0.5, Z: z - 0.5},
					rl.Vector3{X: x + 0.5, Y: h - 0.5, Z: z + 0.5},
					rl.Vector3{X: x - 0.5, Y: h - 0.5, Z: z + 0.5},
				)...)
			}
		}
	}

	lib.AddModel("crate", cuboid(wall, rl.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	coord := func(lo, hi float32) float32 {
		return lo + rng.Float32()*(hi-lo)
	}

	level := &Level{
		Name:      opts.Name,
		Triangles: tris,
		Gravity:   DefaultGravity,
		Ambient:   rl.NewColor(26, 26, 26, 255),
		Library:   lib,
	}
	for i := 0; i < opts.Crates; i++ {
		level.Entities = append(level.Entities, EntityDef{
			Name:     "crate",
			Model:    "crate",
			Position: [3]float32{coord(-s+2, s-2), coord(h/2+1, h-2), coord(-s+2, s-2)},
			Rotation: [3]float32{0, coord(0, 360), 0},
			Dynamic:  true,
			Radius:   0.5,
		})
	}
	return level
}

func quadTriangles(m *assets.Material, a, b, c, d rl.Vector3) []assets.Triangle {
	return []assets.Triangle{
		{Verts: [3]assets.Vertex{{Pos: a}, {Pos: b}, {Pos: c}}, Material: m},
		{Verts: [3]assets.Vertex{{Pos: a}, {Pos: c}, {Pos: d}}, Material: m},
	}
}

// cuboid returns the six outward facing sides of the box [lo, hi].
func cuboid(m *assets.Material, lo, hi rl.Vector3) []assets.Triangle {
	p := func(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X, hi.Y, hi.Z

	var tris []assets.Triangle
	tris = append(tris, quadTriangles(m, p(x0, y0, z0), p(x1, y0, z0), p(x1, y0, z1), p(x0, y0, z1))...)
	tris = append(tris, quadTriangles(m, p(x0, y1, z0), p(x0, y1, z1), p(x1, y1, z1), p(x1, y1, z0))...)
	tris = append(tris, quadTriangles(m, p(x0, y0, z0), p(x0, y1, z0), p(x1, y1, z0), p(x1, y0, z0))...)
	tris = append(tris, quadTriangles(m, p(x0, y0, z1), p(x1, y0, z1), p(x1, y1, z1), p(x0, y1, z1))...)
	tris = append(tris, quadTriangles(m, p(x0, y0, z0), p(x0, y0, z1), p(x0, y1, z1), p(x0, y1, z0))...)
	tris = append(tris, quadTriangles(m, p(x1, y0, z0), p(x1, y1, z0), p(x1, y1, z1), p(x1, y0, z1))...)
	return tris
}
