package world

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"

	"spatial3d/internal/assets"
	"spatial3d/internal/physics"
)

func TestRayCastFace(t *testing.T) {
	tree := Build(assets.NewLibrary(), box(stone, 10), testConfig(6))

	hit, ok := tree.RayCast(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{X: 1}, 100)
	require.True(t, ok)
	require.InDelta(t, 9, hit.Distance, 1e-4)
	require.NotNil(t, hit.Face)
	require.Nil(t, hit.Entity)
	require.InDelta(t, 1, math.Abs(float64(hit.Face.Normal.X)), 1e-6)

	// Distances are in multiples of the direction.
	hit, ok = tree.RayCast(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{Y: -4}, 100)
	require.True(t, ok)
	require.InDelta(t, 3, hit.Distance, 1e-4)

	_, ok = tree.RayCast(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{X: 1}, 5)
	require.False(t, ok, "wall is beyond max distance")

	_, ok = tree.RayCast(rl.Vector3{}, rl.Vector3{}, 100)
	require.False(t, ok, "zero direction")
}

func TestRayCastFromOutside(t *testing.T) {
	tree := Build(assets.NewLibrary(), box(stone, 10), testConfig(4))

	hit, ok := tree.RayCast(rl.Vector3{X: 1, Y: 2, Z: -30}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	require.InDelta(t, 20, hit.Distance, 1e-4)

	_, ok = tree.RayCast(rl.Vector3{X: 1, Y: 20, Z: -30}, rl.Vector3{Z: 1}, 100)
	require.False(t, ok, "passes above the box")
}

func TestRayCastEntity(t *testing.T) {
	tree := Build(assets.NewLibrary(), box(stone, 10), testConfig(5))
	e := spawnPanel(tree, "target", rl.Vector3{X: 3, Y: 2, Z: 5})

	hit, ok := tree.RayCast(rl.Vector3{X: 3, Y: 2, Z: -5}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	require.Equal(t, e, hit.Entity)
	require.Nil(t, hit.Face)
	require.InDelta(t, 10, hit.Distance, 1e-4)

	// Past the entity the wall is hit.
	hit, ok = tree.RayCast(rl.Vector3{X: 3, Y: 2, Z: 6}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	require.Nil(t, hit.Entity)
	require.InDelta(t, 4, hit.Distance, 1e-4)

	e.SetWorld(nil)
	hit, ok = tree.RayCast(rl.Vector3{X: 3, Y: 2, Z: -5}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	require.Nil(t, hit.Entity)
	require.InDelta(t, 15, hit.Distance, 1e-4)
}

func TestRayCastIgnoresCollisionOnlyFaces(t *testing.T) {
	tris := append(floorQuad(stone, 10, 0), floorQuad(glass, 10, 5)...)
	tree := Build(assets.NewLibrary(), tris, testConfig(3))

	hit, ok := tree.RayCast(rl.Vector3{X: 1, Y: 10, Z: 2}, rl.Vector3{Y: -1}, 100)
	require.True(t, ok)
	require.InDelta(t, 10, hit.Distance, 1e-4)
}

func TestFindCollisions(t *testing.T) {
	tris := append(floorQuad(stone, 10, 0), floorQuad(glass, 10, 5)...)
	tree := Build(assets.NewLibrary(), tris, testConfig(4))

	require.Empty(t, tree.FindCollisions(rl.Vector3{X: 1, Y: 2.5, Z: 2}, 1, nil))

	faces := tree.FindCollisions(rl.Vector3{X: 1, Y: 0.5, Z: 2}, 1, nil)
	require.NotEmpty(t, faces)
	for _, f := range faces {
		require.InDelta(t, 0, f.Verts[0].Y, 1e-6)
	}

	// Collision-only faces block movement.
	faces = tree.FindCollisions(rl.Vector3{X: 1, Y: 4.5, Z: 2}, 1, nil)
	require.NotEmpty(t, faces)
	for _, f := range faces {
		require.InDelta(t, 5, f.Verts[0].Y, 1e-6)
	}

	ignore := physics.FaceSet{}
	for _, f := range faces {
		ignore.Add(f)
	}
	require.Empty(t, tree.FindCollisions(rl.Vector3{X: 1, Y: 4.5, Z: 2}, 1, ignore))

	require.Panics(t, func() { tree.FindCollisions(rl.Vector3{}, 0, nil) })
}
