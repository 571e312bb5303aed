package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"
)

func TestAABBSplit(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -2, Y: 0, Z: -4}, Max: rl.Vector3{X: 6, Y: 3, Z: 4}}

	below, above := box.Split(Plane{Normal: rl.Vector3{X: 1}, Offset: 2})
	require.Equal(t, rl.Vector3{X: 2, Y: 3, Z: 4}, below.Max)
	require.Equal(t, box.Min, below.Min)
	require.Equal(t, rl.Vector3{X: 2, Y: 0, Z: -4}, above.Min)
	require.Equal(t, box.Max, above.Max)
}

func TestAABBExtend(t *testing.T) {
	box := EmptyAABB()
	require.True(t, box.IsEmpty())

	box = box.Extend(rl.Vector3{X: 1, Y: 2, Z: 3}).Extend(rl.Vector3{X: -1, Y: 5, Z: 0})
	require.False(t, box.IsEmpty())
	require.Equal(t, rl.Vector3{X: -1, Y: 2, Z: 0}, box.Min)
	require.Equal(t, rl.Vector3{X: 1, Y: 5, Z: 3}, box.Max)
	require.True(t, box.Contains(rl.Vector3{X: 0, Y: 3, Z: 1}))
}

func TestPlaneRejectsBox(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	p := Plane{Normal: rl.Vector3{Y: 1}, Offset: 0.5}
	require.False(t, p.RejectsBox(box), "straddling")

	p.Offset = 1.5
	require.True(t, p.RejectsBox(box), "entirely below")

	p = Plane{Normal: rl.Vector3{Y: -1}, Offset: -1.5}
	require.False(t, p.RejectsBox(box), "inside a flipped plane")

	p.Offset = 1.5
	require.True(t, p.RejectsBox(box), "outside a flipped plane")
}
