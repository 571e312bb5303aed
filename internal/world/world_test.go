package world

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"

	"spatial3d/internal/assets"
	"spatial3d/internal/engine"
)

// The settled velocity bound below holds for g = 5 stepped at 60 Hz. Under
// the default gravity of 9.81 the residual bounce is around 0.015.
func TestWorldDropSettles(t *testing.T) {
	lib := assets.NewLibrary()
	w := New("floor", lib, Build(lib, floorQuad(stone, 50, 0), testConfig(0)))
	w.Gravity = rl.Vector3{Y: -5}

	e := engine.NewEntity("ball")
	e.Dynamic = true
	e.CollisionRadius = 1
	e.SetModel(panelModel(), rl.Vector3{})
	e.Move(rl.Vector3{X: 3, Y: 100, Z: -7})

	landings := 0
	e.Landed.AddListener(func(*engine.Entity) { landings++ })
	w.Spawn(e)

	const dt = float32(1) / 60
	for i := 0; i < 1200; i++ {
		require.Equal(t, 1, w.Update(dt))
		require.Greater(t, e.Position().Y, float32(0), "fell through the floor at tick %d", i)

		if i >= 1140 {
			require.True(t, e.Grounded(), "tick %d", i)
			require.InDelta(t, 0, e.Velocity().Y, 1e-2, "tick %d", i)
			require.InDelta(t, 1, e.Position().Y, 2e-2, "tick %d", i)
		}
	}
	require.Positive(t, landings)
	require.Equal(t, uint64(1200), w.Ticks())
	require.InDelta(t, 3, e.Position().X, 1e-3)
	require.InDelta(t, -7, e.Position().Z, 1e-3)
}

func TestWorldNoTunneling(t *testing.T) {
	lib := assets.NewLibrary()
	w := New("box", lib, Build(lib, box(stone, 10), testConfig(6)))
	w.Gravity = rl.Vector3{}

	e := engine.NewEntity("bullet")
	e.Dynamic = true
	e.CollisionRadius = 1
	e.SetModel(panelModel(), rl.Vector3{})
	e.Move(rl.Vector3{X: 5, Y: 2.5, Z: 3.5})
	e.SetVelocity(rl.Vector3{X: 100})
	w.Spawn(e)

	w.Update(0.1)
	require.LessOrEqual(t, e.Position().X, float32(9.002))
	require.Greater(t, e.Position().X, float32(8.9))
	require.LessOrEqual(t, e.Velocity().X, float32(0))
}

func TestWorldSpawnDestroy(t *testing.T) {
	lib := assets.NewLibrary()
	w := New("box", lib, Build(lib, box(stone, 10), testConfig(3)))

	still := engine.NewEntity("statue")
	still.SetModel(panelModel(), rl.Vector3{})
	still.Move(rl.Vector3{X: 1, Y: 1, Z: 1})
	w.Spawn(still)

	mover := engine.NewEntity("ball")
	mover.Dynamic = true
	mover.SetModel(panelModel(), rl.Vector3{})
	mover.Move(rl.Vector3{X: -3, Y: 4, Z: -3})
	w.Spawn(mover)
	w.Spawn(mover)

	require.Len(t, w.Scene.Entities, 2)
	require.Positive(t, sum(membership(w.Tree, still)))
	require.Equal(t, 1, w.Update(0.01), "only dynamic entities move")
	require.Less(t, mover.Position().Y, float32(4))
	require.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, still.Position())

	w.Destroy(still)
	require.Nil(t, still.World())
	require.Zero(t, sum(membership(w.Tree, still)))
	require.Nil(t, w.Scene.FindByID(still.ID))
	require.Equal(t, mover, w.Scene.FindByID(mover.ID))

	w.Unload()
	require.Nil(t, mover.World())
	require.Zero(t, sum(membership(w.Tree, mover)))
	require.Zero(t, w.Update(0.01), "unloaded entities stay put")
}
