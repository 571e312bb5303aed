package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cross computes the cross product of two vectors
func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to have a direction.
func Normalize(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < 1e-6 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/l)
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Min(float64(a.X), float64(b.X))),
		Y: float32(math.Min(float64(a.Y), float64(b.Y))),
		Z: float32(math.Min(float64(a.Z), float64(b.Z))),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Max(float64(a.X), float64(b.X))),
		Y: float32(math.Max(float64(a.Y), float64(b.Y))),
		Z: float32(math.Max(float64(a.Z), float64(b.Z))),
	}
}
