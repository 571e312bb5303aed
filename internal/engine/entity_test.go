package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"

	"spatial3d/internal/assets"
)

func TestEntityRegistration(t *testing.T) {
	w := newFakeWorld()
	e := NewEntity("crate")

	e.SetWorld(w)
	require.Zero(t, w.entities[e], "no model, no registration")

	e.SetModel(panelModel(&assets.Material{Color: rl.White}), rl.Vector3{Y: 1})
	require.Equal(t, 1, w.entities[e])
	require.Equal(t, rl.Vector3{Y: 1}, e.Pivot())

	e.Move(rl.Vector3{X: 4})
	require.Equal(t, 1, w.entities[e])
	require.Equal(t, rl.Vector3{X: 4, Y: 1}, e.Pivot())

	e.SetWorld(nil)
	require.Zero(t, w.entities[e])
	require.Nil(t, e.World())
}

func TestEntityUpdateReregistersAfterPanic(t *testing.T) {
	w := newFakeWorld()
	e := NewEntity("crate")
	e.SetModel(panelModel(&assets.Material{Color: rl.White}), rl.Vector3{})
	e.SetWorld(w)
	w.ops = nil

	require.Panics(t, func() {
		e.Update(func() {
			panic("mutation failed")
		})
	})
	require.Equal(t, 1, w.entities[e])
	require.Equal(t, []string{"unregister", "register"}, w.ops)
}

func TestEntityMove(t *testing.T) {
	w := newFakeWorld()
	e := NewEntity("crate")
	e.SetModel(panelModel(&assets.Material{Color: rl.White}), rl.Vector3{})
	e.SetWorld(w)

	e.Thrust(rl.Vector3{X: 3})
	e.Thrust(rl.Vector3{Y: 1})
	require.Equal(t, rl.Vector3{X: 3, Y: 1}, e.Velocity())

	w.ops = nil
	e.Move(rl.Vector3{})
	require.Empty(t, w.ops, "moving in place does not touch the world")
	require.Equal(t, rl.Vector3{}, e.Velocity())

	e.SetRotation(rl.Vector3{})
	require.Empty(t, w.ops)

	step := rl.Vector3{X: 1e-5}
	e.Move(step)
	require.Equal(t, step, e.Position(), "small steps are not dropped")
	require.Equal(t, []string{"unregister", "register"}, w.ops)
}

func TestLightMoveSmallStep(t *testing.T) {
	w := newFakeWorld()
	l := NewLight()
	l.SetBrightness(1)
	l.SetWorld(w)

	for i := 1; i <= 10; i++ {
		l.Move(rl.Vector3{Y: float32(i) * 1e-5})
	}
	require.InDelta(t, 1e-4, l.Position().Y, 1e-9)
	require.Equal(t, 1, w.registeredLights())
}

func TestEntityLights(t *testing.T) {
	lamp := &assets.Material{Name: "lamp", Color: rl.White, Brightness: 0.5, LightColor: rl.Orange}
	w := newFakeWorld()
	e := NewEntity("lamp")
	e.SetModel(panelModel(lamp), rl.Vector3{})
	require.Empty(t, e.Lights(), "lights need a world")

	e.SetWorld(w)
	require.Len(t, e.Lights(), 1)
	require.Equal(t, 1, w.registeredLights())
	require.Equal(t, rl.Orange, e.Lights()[0].Color())

	e.Move(rl.Vector3{Z: 7})
	require.Equal(t, rl.Vector3{Z: 7}, e.Lights()[0].Position())
	require.Equal(t, 1, w.registeredLights())

	e.SetLightsOn(false)
	require.Empty(t, e.Lights())
	require.Zero(t, w.registeredLights())

	e.SetLightsOn(true)
	require.Equal(t, 1, w.registeredLights())

	e.SetWorld(nil)
	require.Zero(t, w.registeredLights())
}

func TestEntityRaytrace(t *testing.T) {
	w := newFakeWorld()
	e := NewEntity("panel")
	e.SetModel(panelModel(&assets.Material{Color: rl.White}), rl.Vector3{})
	e.SetWorld(w)
	e.Move(rl.Vector3{Z: -10})

	dist := float32(100)
	require.True(t, e.Raytrace(rl.Vector3{Z: -20}, rl.Vector3{Z: 1}, &dist))
	require.InDelta(t, 10, dist, 1e-4)

	dist = 100
	require.False(t, e.Raytrace(rl.Vector3{X: 5, Z: -20}, rl.Vector3{Z: 1}, &dist), "outside the bounding sphere")

	e.SetRotation(rl.Vector3{Y: 90})
	dist = 100
	require.False(t, e.Raytrace(rl.Vector3{X: 0.5, Z: -20}, rl.Vector3{Z: 1}, &dist), "parallel to the panel")

	dist = 100
	require.True(t, e.Raytrace(rl.Vector3{X: -20, Z: -10}, rl.Vector3{X: 1}, &dist))
	require.InDelta(t, 20, dist, 1e-3)
}

func TestEntityVisit(t *testing.T) {
	e := NewEntity("crate")
	require.True(t, e.Visit(1))
	require.False(t, e.Visit(1))
	require.True(t, e.Visit(2))
}
