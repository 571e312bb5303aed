// Benchmark comparing tree queries against a scan over every face
package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
	"spatial3d/internal/physics"
	"spatial3d/internal/world"
)

const (
	queries = 2000
	radius  = 1
)

func main() {
	fmt.Printf("%6s %6s | %-28s | %-28s\n", "faces", "leaves", "collisions tree/scan", "raycasts tree/scan")

	// Test various level sizes
	for _, pillars := range []int{2, 4, 8, 16, 32, 64} {
		benchLevel(pillars)
	}
}

func benchLevel(pillars int) {
	lib := assets.NewLibrary()
	opts := world.DefaultArenaOptions()
	opts.Pillars = pillars
	opts.Size = float32(10 * (pillars + 1))
	opts.Crates = 0
	level := world.GenerateArena(lib, opts)

	tree := world.Build(lib, level.Triangles, world.DefaultConfig())
	all := assets.NewModel("scan", level.Triangles)
	faces := append(append([]physics.CollisionFace(nil), all.Faces...), all.CollisionFaces...)

	// Consistent query points
	rng := rand.New(rand.NewPCG(42, 42))
	point := func() rl.Vector3 {
		return rl.Vector3{
			X: (rng.Float32()*2 - 1) * opts.Size,
			Y: rng.Float32() * opts.Height,
			Z: (rng.Float32()*2 - 1) * opts.Size,
		}
	}
	points := make([]rl.Vector3, queries)
	dirs := make([]rl.Vector3, queries)
	for i := range points {
		points[i] = point()
		dirs[i] = rl.Vector3Subtract(point(), points[i])
	}

	// Time the tree
	start := time.Now()
	treeHits := 0
	for _, p := range points {
		treeHits += len(tree.FindCollisions(p, radius, nil))
	}
	treeCollide := time.Since(start) / queries

	start = time.Now()
	treeRays := 0
	for i, p := range points {
		if _, ok := tree.RayCast(p, dirs[i], 1); ok {
			treeRays++
		}
	}
	treeRaycast := time.Since(start) / queries

	// Time the scan
	start = time.Now()
	scanHits := 0
	for _, p := range points {
		for i := range faces {
			if _, ok := physics.HitTest(&faces[i], p, radius); ok {
				scanHits++
			}
		}
	}
	scanCollide := time.Since(start) / queries

	start = time.Now()
	scanRays := 0
	for i, p := range points {
		dist := float32(1)
		if physics.RaycastFaces(all.Faces, p, dirs[i], &dist) != nil {
			scanRays++
		}
	}
	scanRaycast := time.Since(start) / queries

	fmt.Printf("%6d %6d | %9v %9v (%5d/%5d) | %9v %9v (%4d/%4d)\n",
		len(faces), len(tree.Leaves()),
		treeCollide.Round(time.Nanosecond), scanCollide.Round(time.Nanosecond), treeHits, scanHits,
		treeRaycast.Round(time.Nanosecond), scanRaycast.Round(time.Nanosecond), treeRays, scanRays)
}
